package main

import (
	"errors"
	"fmt"
	"os"

	"benchdata/internal/benchmark"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// askOneFunc can be replaced in tests.
var askOneFunc = survey.AskOne

var (
	initConfigPath string
	initYes        bool
	initForce      bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file and an empty data file",
	Long: `Asks for the repository URL, suite name, benchmark tool and data file
location, writes them to config.yaml and creates the data file when it does not
exist yet. --yes accepts the defaults without prompting.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initConfigPath, "output", "config.yaml", "config file to write")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "accept defaults without prompting")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}

type initAnswers struct {
	RepoURL  string
	Suite    string
	Tool     string
	DataFile string
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if _, err := os.Stat(initConfigPath); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", initConfigPath)
	}

	answers := initAnswers{
		RepoURL:  viper.GetString("repo_url"),
		Suite:    viper.GetString("suite"),
		Tool:     viper.GetString("tool"),
		DataFile: viper.GetString("data_file"),
	}
	if answers.RepoURL == "" {
		if remote, err := gitClientFactory().RemoteURL(cmd.Context(), "."); err == nil {
			answers.RepoURL = remote
		}
	}

	if !initYes {
		if err := askInit(&answers); err != nil {
			return err
		}
	}

	if _, err := benchmark.ParseTool(answers.Tool); err != nil {
		return err
	}

	if answers.Suite == "" || answers.DataFile == "" {
		return errors.New("suite and data file must not be empty")
	}

	// A separate instance keeps flags and env overrides out of the file.
	v := viper.New()
	v.Set("repo_url", answers.RepoURL)
	v.Set("suite", answers.Suite)
	v.Set("tool", answers.Tool)
	v.Set("data_file", answers.DataFile)
	v.Set("alert_threshold", viper.GetFloat64("alert_threshold"))
	v.Set("max_items", viper.GetInt("max_items"))
	if err := v.WriteConfigAs(initConfigPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", initConfigPath, err)
	}
	fmt.Fprintf(out, "Wrote %s\n", initConfigPath)

	store, err := storeFactory(answers.DataFile, answers.RepoURL)
	if err != nil {
		return err
	}
	if _, err := os.Stat(answers.DataFile); errors.Is(err, os.ErrNotExist) {
		if err := store.Save(benchmark.New(answers.RepoURL)); err != nil {
			return fmt.Errorf("failed to create %s: %w", answers.DataFile, err)
		}
		fmt.Fprintf(out, "Created empty dataset %s\n", answers.DataFile)
	} else {
		fmt.Fprintf(out, "Keeping existing dataset %s\n", answers.DataFile)
	}
	return nil
}

func askInit(a *initAnswers) error {
	if err := askOneFunc(&survey.Input{
		Message: "Repository URL:",
		Default: a.RepoURL,
	}, &a.RepoURL); err != nil {
		return err
	}

	if err := askOneFunc(&survey.Input{
		Message: "Benchmark suite name:",
		Default: a.Suite,
	}, &a.Suite, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	tools := make([]string, len(benchmark.Tools))
	for i, t := range benchmark.Tools {
		tools[i] = string(t)
	}
	if err := askOneFunc(&survey.Select{
		Message: "Benchmark tool:",
		Options: tools,
		Default: a.Tool,
	}, &a.Tool); err != nil {
		return err
	}

	return askOneFunc(&survey.Input{
		Message: "Data file:",
		Default: a.DataFile,
	}, &a.DataFile, survey.WithValidator(survey.Required))
}
