package config

import (
	"github.com/spf13/cobra"
)

const (
	configKindString = iota
	configKindBool
)

type configEntry struct {
	kind int
	help string
}

var config = map[string]configEntry{
	"noninteractive": {configKindBool, "never ask questions"},
	"verbose":        {configKindBool, "show debug output"},
	"nocolor":        {configKindBool, "disable color output"},
	"locale":         {configKindString, "default language of the item names (en_us)"},
	"cachedir":       {configKindString, "where the fabric version cache is stored"},
	"template.owner": {configKindString, "GitHub owner of the template repository"},
	"template.repo":  {configKindString, "name of the template repository"},
	"template.ref":   {configKindString, "branch or tag of the template (default branch if empty)"},
	"gradle.jvmargs": {configKindString, "org.gradle.jvmargs of new projects"},
}

var SubCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global config options",
}
