package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockAskOne(answers map[string]string) func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
	return func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
		var msg string
		switch q := p.(type) {
		case *survey.Input:
			msg = q.Message
		case *survey.Select:
			msg = q.Message
		}
		if v, ok := answers[msg]; ok {
			*(response.(*string)) = v
		}
		return nil
	}
}

func TestInitCmd_Interactive(t *testing.T) {
	t.Chdir(t.TempDir())
	withGit(t, &fakeGit{remote: "https://github.com/npequeux/rtop"})

	orig := askOneFunc
	askOneFunc = mockAskOne(map[string]string{
		"Benchmark suite name:": "Rust Benchmark",
		"Benchmark tool:":       "cargo",
		"Data file:":            "bench/data.js",
	})
	defer func() { askOneFunc = orig }()

	// Not config.yaml, so later commands in this process do not pick it up.
	out, err := executeCommand(rootCmd, "init", "--output", "benchdata.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote benchdata.yaml")
	assert.Contains(t, out, "Created empty dataset bench/data.js")

	v := viper.New()
	v.SetConfigFile("benchdata.yaml")
	require.NoError(t, v.ReadInConfig())
	assert.Equal(t, "https://github.com/npequeux/rtop", v.GetString("repo_url"))
	assert.Equal(t, "Rust Benchmark", v.GetString("suite"))
	assert.Equal(t, "cargo", v.GetString("tool"))
	assert.Equal(t, "bench/data.js", v.GetString("data_file"))

	d := loadFile(t, filepath.Join("bench", "data.js"))
	assert.Equal(t, "https://github.com/npequeux/rtop", d.RepoURL)
	assert.Equal(t, 0, d.Entries.Len())

	_, err = executeCommand(rootCmd, "init", "--output", "benchdata.yaml")
	assert.ErrorContains(t, err, "already exists")
}

func TestInitCmd_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	withGit(t, &fakeGit{})

	orig := askOneFunc
	askOneFunc = func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
		t.Fatal("--yes must not prompt")
		return nil
	}
	defer func() { askOneFunc = orig }()

	out, err := executeCommand(rootCmd, "init", "--yes", "--output", "bench.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote bench.yaml")

	_, err = os.Stat(filepath.Join("dev", "bench", "data.js"))
	assert.NoError(t, err)

	// Existing data is kept on a forced re-init.
	out, err = executeCommand(rootCmd, "init", "--yes", "--force", "--output", "bench.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "Keeping existing dataset")
}

func TestInitCmd_PromptError(t *testing.T) {
	t.Chdir(t.TempDir())
	withGit(t, &fakeGit{})

	orig := askOneFunc
	askOneFunc = func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
		return errors.New("interrupt")
	}
	defer func() { askOneFunc = orig }()

	_, err := executeCommand(rootCmd, "init")
	assert.EqualError(t, err, "interrupt")

	_, statErr := os.Stat("config.yaml")
	assert.True(t, os.IsNotExist(statErr))
}
