package renamecmder

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"learnlog/internal/usecase/rename"
)

const renameLongDesc string = `Rename every file with the given extension in a folder to
<prefix><n><ext>, numbering from zero in name order.

Files that already follow the pattern are renumbered safely. If a target
name is taken by a file that is not being renamed, nothing changes.

Examples:
  learnlog rename
  learnlog rename ./photos --ext png --prefix photo_
  learnlog rename ./images --dry-run`

const renameShortDesc string = "Batch rename images in a folder"

type renameCommander struct {
	ext    string
	prefix string
	dryRun bool
}

func NewRenameCmd() *cobra.Command {
	cmder := &renameCommander{}

	cmd := &cobra.Command{
		Use:   "rename [folder]",
		Short: renameShortDesc,
		Long:  renameLongDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "./images"
			if len(args) == 1 {
				dir = args[0]
			}
			return cmder.run(cmd, dir)
		},
	}

	cmd.Flags().StringVar(&cmder.ext, "ext", ".jpg", "Extension to match, case-insensitive")
	cmd.Flags().StringVar(&cmder.prefix, "prefix", "image_", "Prefix for the new names")
	cmd.Flags().BoolVar(&cmder.dryRun, "dry-run", false, "Print the plan without renaming")

	return cmd
}

func (c *renameCommander) run(cmd *cobra.Command, dir string) error {
	res, err := rename.BatchRename(dir, rename.Options{
		Ext:    c.ext,
		Prefix: c.prefix,
		DryRun: c.dryRun,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	faint := color.New(color.Faint)
	for _, r := range res.Renames {
		faint.Fprintf(out, "%s -> %s\n", r.From, r.To)
	}

	if res.DryRun {
		color.New(color.FgYellow).Fprintf(out, "Would rename %d files.\n", res.Count())
		return nil
	}
	color.New(color.FgGreen).Fprintf(out, "Renamed %d files successfully.\n", res.Count())
	return nil
}
