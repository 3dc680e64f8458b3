package cli_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/orgtext/internal/cli"
)

func Test_Fmt_Prints_Canonical_Text_When_No_Flags(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  string
		want string
	}{
		{name: "canonical unchanged", src: notesOrg, want: notesOrg},
		{name: "space before tags", src: "* TODO x :a:b:\n", want: "* TODO x\t:a:b:\n"},
		{name: "crlf line breaks", src: "* A\r\nbody\r\n", want: "* A\nbody\n"},
		{name: "lowercase keyword is title", src: "* todo x\n", want: "* todo x\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			c.WriteFile("a.org", tc.src)

			require.Equal(t, tc.want, c.MustRun("fmt", "a.org"))
			require.Equal(t, tc.src, c.ReadFile("a.org"), "fmt without -w must not touch the file")
		})
	}
}

// Contract: output follows argument order even though files are formatted
// concurrently.
func Test_Fmt_Keeps_Argument_Order_When_Many_Files(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	args := []string{"fmt"}
	want := ""

	for _, name := range []string{"e", "d", "c", "b", "a", "f", "g", "h"} {
		c.WriteFile(name+".org", "* "+name+" :t:\n")
		args = append(args, name+".org")
		want += "* " + name + "\t:t:\n"
	}

	require.Equal(t, want, c.MustRun(args...))
}

func Test_Fmt_Rewrites_Only_Changed_Files_When_Write_Flag(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("clean.org", "* A\t:x:\n")
	c.WriteFile("dirty.org", "* B :y:\n")

	stdout := c.MustRun("fmt", "-w", "clean.org", "dirty.org")

	require.Equal(t, "formatted dirty.org\n", stdout)
	require.Equal(t, "* A\t:x:\n", c.ReadFile("clean.org"))
	require.Equal(t, "* B\t:y:\n", c.ReadFile("dirty.org"))
	require.NoFileExists(t, c.Path("dirty.org.lock"))
}

// Contract: --check reports without writing and fails when anything would change.
func Test_Fmt_Warns_When_Check_Finds_Non_Canonical_File(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("clean.org", "* A\n")
	c.WriteFile("dirty.org", "* B :y:\n")

	require.Empty(t, c.MustRun("fmt", "--check", "clean.org"))

	stdout, stderr, code := c.Run("fmt", "--check", "-w", "clean.org", "dirty.org")
	require.Equal(t, 1, code)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "warning: dirty.org: not in canonical form; run orgtext fmt -w")
	require.NotContains(t, stderr, "clean.org")
	require.Equal(t, "* B :y:\n", c.ReadFile("dirty.org"))
}

func Test_Fmt_Fails_When_Arguments_Invalid(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("a.org", "* A\n")

	cli.AssertContains(t, c.MustFail("fmt"), "file argument is required")
	cli.AssertContains(t, c.MustFail("fmt", "-w", "-"), `"-" cannot be combined with --write`)
	cli.AssertContains(t, c.MustFail("fmt", "-", "-"), `"-" can be given only once`)
	cli.AssertContains(t, c.MustFail("fmt", "a.org", "missing.org"), "missing.org")
}

func Test_Fmt_Formats_Stdin_When_Path_Is_Dash(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout, stderr, code := c.RunWithInput("* DONE [#C] piped :a:\n", "fmt", "-")
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "* DONE [#C] piped\t:a:\n", stdout)
}
