package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/scrimlib/scrim/terminfo"
)

var capsShowKeys bool

var capsCmd = &cobra.Command{
	Use:   "caps [terminal]",
	Short: "Dump the resolved capability set for a terminal type",
	Long: `Dump the capability set resolved for the named terminal type,
or for $TERM when no name is given. Disk terminfo entries win over
the built-in database; environment overlays (COLORTERM and friends)
are applied the same way the library applies them at runtime.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCaps,
}

func init() {
	capsCmd.Flags().BoolVarP(&capsShowKeys, "keys", "k", false, "include the special-key sequence table")
}

func runCaps(cmd *cobra.Command, args []string) {
	var (
		caps *terminfo.CapabilitySet
		err  error
	)
	if len(args) == 1 {
		caps, err = terminfo.Lookup(args[0])
	} else {
		caps, err = terminfo.LookupEnv()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("name:     %s\n", caps.Name)
	if len(caps.Aliases) > 0 {
		fmt.Printf("aliases:  %v\n", caps.Aliases)
	}
	fmt.Printf("size:     %dx%d\n", caps.Columns, caps.Lines)
	fmt.Printf("colors:   %d (pairs %d)\n", caps.Colors, caps.Pairs)
	fmt.Printf("flags:    am=%t bce=%t xenl=%t\n",
		caps.AutoMargin, caps.BackColorErase, caps.EatNewlineGlitch)

	strs := []struct {
		name string
		val  string
	}{
		{"clear", caps.Clear},
		{"el", caps.ClearEOL},
		{"ed", caps.ClearEOS},
		{"home", caps.Home},
		{"cup", caps.CursorAddress},
		{"sgr0", caps.AttrOff},
		{"bold", caps.Bold},
		{"smul", caps.Underline},
		{"rev", caps.Reverse},
		{"setaf", caps.SetFg},
		{"setab", caps.SetBg},
		{"op", caps.ResetColors},
		{"smcup", caps.EnterCA},
		{"rmcup", caps.ExitCA},
		{"civis", caps.HideCursor},
		{"cnorm", caps.ShowCursor},
		{"smacs", caps.EnterACS},
		{"rmacs", caps.ExitACS},
	}
	fmt.Println("strings:")
	for _, s := range strs {
		if s.val != "" {
			fmt.Printf("  %-6s %q\n", s.name, s.val)
		}
	}

	if capsShowKeys {
		seqs := caps.KeySequences()
		names := make([]string, 0, len(seqs))
		for name := range seqs {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Println("keys:")
		for _, name := range names {
			fmt.Printf("  %-6s %q\n", name, seqs[name])
		}
	}

	if len(caps.ExtStrings) > 0 {
		names := make([]string, 0, len(caps.ExtStrings))
		for name := range caps.ExtStrings {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Println("extended:")
		for _, name := range names {
			fmt.Printf("  %-6s %q\n", name, caps.ExtStrings[name])
		}
	}
}
