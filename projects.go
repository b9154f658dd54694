package main

import (
	"fmt"
	"os"
	"path"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/tlc/lib/project"
	"github.com/vyPal/tlc/util"
)

const helloSource = `func main -> i32 is
    var greeting : string := "Hello, world!";
    print(greeting);
    return 0;
end
`

func init() {
	commands = append(commands, &cli.Command{
		Name:      "init",
		Usage:     "Initialize a new TL project",
		ArgsUsage: "[directory]",
		Category:  "project",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "The name of the project",
			},
			&cli.StringFlag{
				Name:    "main",
				Aliases: []string{"m"},
				Usage:   "The main file of the project",
			},
			&cli.StringFlag{
				Name:    "author",
				Aliases: []string{"a"},
				Usage:   "The author of the project",
			},
			&cli.StringFlag{
				Name:    "license",
				Aliases: []string{"l"},
				Usage:   "The license of the project",
			},
			&cli.StringFlag{
				Name:  "config-format",
				Usage: "Write the config as yaml or toml",
				Value: "yaml",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Accept all defaults without prompting",
			},
		},
		Action: initProject,
	}, &cli.Command{
		Name:      "info",
		Usage:     "Display the configuration of a project",
		ArgsUsage: "[directory]",
		Category:  "project",
		Action:    projectInfo,
	})
}

func initProject(c *cli.Context) error {
	rootDir := c.Args().First()
	if rootDir == "" {
		rootDir = "."
	}
	yes := c.Bool("yes")

	var confName string
	switch c.String("config-format") {
	case "yaml":
		confName = "tlconf.yaml"
	case "toml":
		confName = "tlconf.toml"
	default:
		return cli.Exit(color.RedString("Error: unknown config format %q", c.String("config-format")), 1)
	}

	if _, err := os.Stat(rootDir); !os.IsNotExist(err) {
		files, err := os.ReadDir(rootDir)
		if err != nil {
			return err
		}
		if len(files) > 0 && !yes && !util.PromptYN("The directory is not empty, continue?", false) {
			return nil
		}
	} else {
		if err := os.MkdirAll(rootDir, 0755); err != nil {
			return err
		}
		fmt.Println("Created directory:", rootDir)
	}

	conf := project.TlConf{}
	conf.CreateDefault(path.Base(rootDir))
	if !yes && !util.PromptYN("Use default configuration?", true) {
		conf.Name = util.PromptString("Project name", conf.Name)
		conf.Description = util.PromptString("Project description", conf.Description)
		conf.Version = util.PromptString("Project version", conf.Version)
		conf.Author = util.PromptString("Project author", conf.Author)
		conf.License = util.PromptString("Project license", conf.License)
	}
	for flag, field := range map[string]*string{
		"name":    &conf.Name,
		"main":    &conf.Main,
		"author":  &conf.Author,
		"license": &conf.License,
	} {
		if c.IsSet(flag) {
			*field = c.String(flag)
		}
	}

	mainFile := path.Join(rootDir, conf.Main)
	if err := os.MkdirAll(path.Dir(mainFile), 0755); err != nil {
		return err
	}
	if _, err := os.Stat(mainFile); os.IsNotExist(err) {
		if err := os.WriteFile(mainFile, []byte(helloSource), 0644); err != nil {
			return err
		}
		fmt.Println("Created file:", mainFile)
	}

	saved, err := conf.Save(path.Join(rootDir, confName), yes)
	if err != nil {
		return cli.Exit(color.RedString("Error writing config: %s", err), 1)
	}
	if !saved {
		color.Yellow("Kept existing %s, project not initialized", path.Join(rootDir, confName))
		return nil
	}
	fmt.Println("Created file:", path.Join(rootDir, confName))

	color.Green("Project %s initialized", conf.Name)
	return nil
}

func projectInfo(c *cli.Context) error {
	dir := c.Args().First()
	if dir == "" {
		dir = "."
	}

	conf, file, err := loadProject(dir)
	if os.IsNotExist(err) {
		return cli.Exit(color.RedString("Error: no tlconf.yaml or tlconf.toml in %s", dir), 1)
	}
	if err != nil {
		return cli.Exit(color.RedString("Error reading project config: %s", err), 1)
	}

	fmt.Println("--------------------------------------------------")
	fmt.Println("                  Project Details                 ")
	fmt.Println("--------------------------------------------------")
	fmt.Printf("Config      : %s\n", file)
	fmt.Printf("Name        : %s\n", conf.Name)
	fmt.Printf("Description : %s\n", conf.Description)
	fmt.Printf("Version     : %s\n", conf.Version)
	fmt.Printf("Main File   : %s\n", conf.Main)
	fmt.Printf("Author      : %s\n", conf.Author)
	fmt.Printf("License     : %s\n", conf.License)
	fmt.Printf("Indent      : %d\n", conf.Format.Indent)
	fmt.Printf("Policy      : %s\n", conf.Diagnostics.Policy)
	fmt.Println("--------------------------------------------------")
	return nil
}

// loadProject reads the config in dir with environment overrides applied,
// checked the same way the source commands check it.
func loadProject(dir string) (project.TlConf, string, error) {
	conf, file, err := project.GetTlConf(dir)
	if err != nil {
		return project.TlConf{}, file, err
	}

	conf.ApplyEnv()
	if err := conf.Validate(); err != nil {
		return project.TlConf{}, file, fmt.Errorf("%s: %w", file, err)
	}
	return conf, file, nil
}
