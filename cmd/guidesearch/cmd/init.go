package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const sampleGuide = `=== RESIDENT EVIL 2 - COMPLETE WALKTHROUGH ===

== SCENARIO A - LEON ==

--- POLICE STATION - ENTRANCE ---
When entering the police station, pick up the AMMO on the reception counter.
Go to the door on the left side to find the STATION MAP.

--- POLICE STATION - EAST CORRIDOR ---
Watch out for zombies in this area! There are 3 zombies in the corridor.
Pick up the HEART KEY on the office desk.
Use the Heart Key on the door to the right.

--- POLICE STATION - CHIEF'S OFFICE ---
Examine the chief's desk to find the CHIEF'S LETTER.
The safe in this room requires the combination: LEFT 2, RIGHT 11, LEFT 14.
Inside the safe is the MEDALLION PIECE.

--- LABORATORY - GENERATOR ROOM ---
To restore power:
1. First activate the blue panel
2. Then activate the red panel
3. Finally the green panel
Power will be restored and you can proceed.

--- FINAL BOSS - G1 ---
Shoot the exposed area (the eye on the shoulder).
Use grenades when he's stunned.
Approximately 15-20 magnum shots will defeat G1.

=== END OF SCENARIO A ===
`

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the guides folder with a sample walkthrough",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(cfg.GuidesDir, 0o755); err != nil {
				return err
			}
			path := filepath.Join(cfg.GuidesDir, "resident_evil_2.txt")
			if _, err := os.Stat(path); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Sample guide already exists: %s\n", path)
				return nil
			}
			if err := os.WriteFile(path, []byte(sampleGuide), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sample guide created: %s\n", path)
			return nil
		},
	}
}
