package cli_test

import (
	"path/filepath"
	"testing"

	"github.com/calvinalkan/statecheck/internal/cli"
)

func Test_Print_Config_Defaults_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("print-config")

	cli.AssertContains(t, stdout, `"cases": 100`)
	cli.AssertContains(t, stdout, `"model": "count"`)
	cli.AssertContains(t, stdout, "# effective_cwd: "+c.Dir)
	cli.AssertContains(t, stdout, "(defaults only)")
}

func Test_Print_Config_From_Config_File_With_Comments_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".statecheck.json", `{
		// This is a comment
		"cases": 5,
		"budget": "2s",
	}`)

	stdout := c.MustRun("print-config")

	cli.AssertContains(t, stdout, `"cases": 5`)
	cli.AssertContains(t, stdout, `"budget": "2s"`)
	cli.AssertContains(t, stdout, "#   project: "+filepath.Join(c.Dir, ".statecheck.json"))
}

func Test_Print_Config_Explicit_Config_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("custom.json", `{"model": "fifo"}`)

	stdout := c.MustRun("-c", "custom.json", "print-config")
	cli.AssertContains(t, stdout, `"model": "fifo"`)

	stdout = c.MustRun("--config=custom.json", "print-config")
	cli.AssertContains(t, stdout, `"model": "fifo"`)
}

func Test_Print_Config_Global_Config_When_XDG_Set(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("xdg/statecheck/config.json", `{"payload": "unit"}`)
	c.Env["XDG_CONFIG_HOME"] = filepath.Join(c.Dir, "xdg")

	stdout := c.MustRun("print-config")

	cli.AssertContains(t, stdout, `"payload": "unit"`)
	cli.AssertContains(t, stdout, "#   global: "+filepath.Join(c.Dir, "xdg", "statecheck", "config.json"))
}

func Test_Config_Explicit_Config_Not_Found_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("-c", "nonexistent.json", "print-config")
	cli.AssertContains(t, stderr, "config file not found")
}

func Test_Config_Invalid_File_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".statecheck.json", `{"cases": "many"}`)

	stderr := c.MustFail("print-config")
	cli.AssertContains(t, stderr, "invalid config")
}
