package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/voicememo/internal/client/models"
	"github.com/dmitrijs2005/voicememo/internal/common"
)

func (a *App) CreateFolder(_ context.Context, args []string) error {
	fs := newFlagSet("mkdir", a.out)
	parent := fs.String("parent", "", "parent folder id")
	color := fs.String("color", "", "color")
	icon := fs.String("icon", "", "icon")

	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(strings.Join(pos, " "))
	if name == "" {
		return errUsage
	}
	if *parent != "" {
		if _, ok := a.lib.Folders.Get(*parent); !ok {
			return fmt.Errorf("folder %s: %w", *parent, common.ErrNotFound)
		}
	}

	f := a.lib.Folders.Create(models.NewFolder{Name: name, ParentID: *parent, Color: *color, Icon: *icon})
	fmt.Fprintf(a.out, "Created %s\n", f.ID)
	return nil
}

// FolderTree prints every folder indented under its parent, with the number
// of recordings it holds.
func (a *App) FolderTree(_ context.Context, _ []string) error {
	roots := a.lib.Folders.RootFolders()
	if len(roots) == 0 {
		fmt.Fprintln(a.out, "No folders")
		return nil
	}
	var walk func(f models.Folder, depth int)
	walk = func(f models.Folder, depth int) {
		fmt.Fprintf(a.out, "%s%s %s (%d)\n", strings.Repeat("  ", depth), f.ID, f.Name, len(a.lib.Folders.RecordingIDs(f.ID)))
		for _, sub := range a.lib.Folders.Subfolders(f.ID) {
			walk(sub, depth+1)
		}
	}
	for _, f := range roots {
		walk(f, 0)
	}
	return nil
}

// ShowFolder prints the folder path, its subfolders and its recordings.
func (a *App) ShowFolder(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	f, ok := a.lib.Folders.Get(args[0])
	if !ok {
		return fmt.Errorf("folder %s: %w", args[0], common.ErrNotFound)
	}

	var names []string
	for _, p := range a.lib.Folders.Path(f.ID) {
		names = append(names, p.Name)
	}
	fmt.Fprintln(a.out, strings.Join(names, " / "))

	for _, sub := range a.lib.Folders.Subfolders(f.ID) {
		fmt.Fprintf(a.out, "  [%s] %s/\n", sub.ID, sub.Name)
	}
	for _, r := range a.lib.RecordingsInFolder(f.ID) {
		a.printRecordingLine(r)
	}
	return nil
}

func (a *App) EditFolder(_ context.Context, args []string) error {
	fs := newFlagSet("fedit", a.out)
	name := fs.String("name", "", "name")
	color := fs.String("color", "", "color")
	icon := fs.String("icon", "", "icon")

	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return errUsage
	}
	set := setFlags(fs)

	var p models.FolderPatch
	if set["name"] {
		p.Name = name
	}
	if set["color"] {
		p.Color = color
	}
	if set["icon"] {
		p.Icon = icon
	}
	if err := a.lib.Folders.Update(pos[0], p); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Updated")
	return nil
}

func (a *App) MoveFolder(_ context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errUsage
	}
	parent := ""
	if len(args) == 2 {
		parent = args[1]
	}
	if err := a.lib.Folders.Move(args[0], parent); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Moved")
	return nil
}

func (a *App) DeleteFolder(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	removed, err := a.lib.Folders.Delete(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %d folder(s)\n", len(removed))
	return nil
}

func (a *App) FileRecording(_ context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	if err := a.requireRecording(args[1]); err != nil {
		return err
	}
	return a.lib.Folders.AddRecording(args[0], args[1])
}

func (a *App) UnfileRecording(_ context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	return a.lib.Folders.RemoveRecording(args[0], args[1])
}

func (a *App) MoveRecording(_ context.Context, args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	if err := a.requireRecording(args[0]); err != nil {
		return err
	}
	return a.lib.Folders.MoveRecording(args[0], args[1], args[2])
}

func (a *App) requireRecording(id string) error {
	if _, ok := a.lib.Recordings.Get(id); !ok {
		return fmt.Errorf("recording %s: %w", id, common.ErrNotFound)
	}
	return nil
}
