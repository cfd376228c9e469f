package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/toastui/internal/toast"
)

var demoOpts struct {
	tui bool
	out outputOptions
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Show a sample toast with every element",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := demoOpts.out.formatter()
		if err != nil {
			return err
		}

		c := &collector{}
		def := demoDefinition(c)
		if demoOpts.tui {
			err = runTerminal(cmd.Context(), def, "", c)
		} else {
			err = runDesktop(cmd.Context(), def, "", c)
		}
		if ferr := c.flush(cmd.OutOrStdout(), f); ferr != nil && err == nil {
			err = ferr
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().BoolVar(&demoOpts.tui, "tui", false, "Draw the sample in the terminal")
	addOutputFlags(demoCmd, &demoOpts.out)
}

// demoDefinition returns the sample toast: every element present, fully opaque.
func demoDefinition(c *collector) toast.Definition {
	return toast.NewBuilder().
		Config(getConfig().NotificationDefaults()).
		Title("Notification!").
		Message("Some text").
		AppName("Application name").
		BackgroundOpacity(1).
		TextInput().
		ComboBox("Ubuntu", "Ubuntu", "Fedora", "Mint", "Debian", "Arch", "ElementaryOS", "Gentoo").
		OKButton("OK", c.press(toast.ReasonOK)).
		CancelButton("CANCEL", c.press(toast.ReasonCancel)).
		IconPathOrURL("https://yt3.ggpht.com/a/AATXAJzrZnDG0bZJwgw4Bg1BpvS4dRqLzE5ZcQXFcIe9=s900-c-k-c0xffffffff-no-rj-mo").
		Definition()
}
