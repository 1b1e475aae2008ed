package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show help for workclock",
	Long:  `Display help for all workclock commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if target, _, err := rootCmd.Find(args); err == nil && target != rootCmd {
				target.Help()
				return
			}
		}
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
 _    _            _        _            _
| |  | |          | |      | |          | |
| |  | | ___  _ __| | _____| | ___   ___| | __
| |/\| |/ _ \| '__| |/ / __| |/ _ \ / __| |/ /
\  /\  / (_) | |  |   < (__| | (_) | (__|   <
 \/  \/ \___/|_|  |_|\_\___|_|\___/ \___|_|\_\

workclock - terminal work-time ledger

COMMANDS:

  start                   Start the clock
    --no-ui               Plain prompt instead of the big clock

    Keys:
      s/enter       Stop, then type a note
      enter         Save with the note
      esc           Save without a note
      q             Discard the running session

  report                  Monthly ledger with carried-over balance
    --previous            Previous month (entries up to today)
    --no-ui               Print tab-separated text
    --save FILE           Save the text report

    Keys:
      ↑/↓           Scroll
      p             Previous/current month
      w             Save text report
      q/esc         Quit

  add [amount] [note]     Manual correction at midnight of a day
    --date                today, yesterday, "N days ago", dd/mm/yyyy
    --note                Note for the entry
    -i, --interactive     Step-by-step wizard

    Smart syntax:
      1h30m, 45m, 1.5h, 1:30    Amount (prefix - to subtract)
      on:yesterday              Day of the entry

    Example:
      workclock add -- -1h dentist on:15/01/2024

  status                  Balance of the current month
  purge                   Remove sessions of two minutes or less
  export [file]           Write every session to a .wclk file
  import <file>           Add sessions from a .wclk file, skipping duplicates
  about                   Version, database path and locale
  help                    Show this help

GLOBAL FLAGS:
  --config FILE           Config file (YAML)
  --debug                 Debug messages in the log file

`)
}
