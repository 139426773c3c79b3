package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "preludezero",
	Short: "Voice-leading and counterpoint tools",
	Long:  `Voices chord progressions with smooth voice leading and audits counterpoint against Baroque part-writing rules.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
