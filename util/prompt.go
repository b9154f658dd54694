package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompts read answers from In and write questions to Out.
var (
	In  io.Reader = os.Stdin
	Out io.Writer = os.Stdout
)

// reader buffers In across prompts; it is replaced when In changes.
var (
	reader   *bufio.Reader
	readerIn io.Reader
)

func readAnswer() string {
	if reader == nil || readerIn != In {
		reader = bufio.NewReader(In)
		readerIn = In
	}

	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return ""
	}
	return strings.TrimSpace(response)
}

// PromptString asks for a value and returns def if the answer is empty.
func PromptString(prompt string, def string) string {
	fmt.Fprintf(Out, "%s (%s): ", prompt, def)

	response := readAnswer()
	if response == "" {
		return def
	}
	return response
}

// PromptYN asks a yes/no question. An empty or unreadable answer yields def.
func PromptYN(prompt string, def bool) bool {
	if def {
		fmt.Fprintf(Out, "%s (Y/n): ", prompt)
	} else {
		fmt.Fprintf(Out, "%s (y/N): ", prompt)
	}

	response := readAnswer()
	if response == "" {
		return def
	}

	switch strings.ToLower(response) {
	case "y", "yes":
		return true
	}
	return false
}
