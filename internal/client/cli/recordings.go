package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/voicememo/internal/client/models"
	"github.com/dmitrijs2005/voicememo/internal/common"
	"github.com/dmitrijs2005/voicememo/internal/filex"
)

// AddRecording registers an audio file already on disk. The title defaults
// to the file name.
func (a *App) AddRecording(ctx context.Context, args []string) error {
	fs := newFlagSet("add", a.out)
	title := fs.String("title", "", "title")
	duration := fs.Float64("d", 0, "duration in seconds")
	category := fs.String("c", "", "category")
	tags := fs.String("tags", "", "comma separated tags")
	fav := fs.Bool("fav", false, "mark as favorite")
	folder := fs.String("folder", "", "folder to file the recording in")
	notes := fs.String("notes", "", "notes")
	cloud := fs.Bool("cloud", false, "audio is stored in the cloud")
	lang := fs.String("lang", "", "transcription language")
	prompt := fs.String("prompt", "", "transcription prompt")

	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return errUsage
	}

	path, err := filepath.Abs(pos[0])
	if err != nil {
		return err
	}
	st, err := os.Stat(path)
	if err != nil {
		return err
	}
	if st.IsDir() {
		return fmt.Errorf("%s is a directory: %w", path, common.ErrInvalidArgument)
	}

	if *folder != "" {
		if _, ok := a.lib.Folders.Get(*folder); !ok {
			return fmt.Errorf("folder %s: %w", *folder, common.ErrNotFound)
		}
	}

	uri, err := filex.FileURI(path)
	if err != nil {
		return fmt.Errorf("audio uri: %w", err)
	}

	in := models.NewRecording{
		Title:       *title,
		Duration:    *duration,
		Size:        st.Size(),
		URI:         uri,
		Category:    models.Category(*category),
		Tags:        splitList(*tags),
		IsFavorite:  *fav,
		Notes:       *notes,
		IsEncrypted: a.lib.Settings.Get().EncryptByDefault,
	}
	if in.Title == "" {
		in.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if *cloud {
		in.StorageLocation = models.StorageCloud
	}

	r, err := a.lib.AddRecording(ctx, in, models.TranscriptionOptions{Language: *lang, Prompt: *prompt})
	if err != nil {
		return err
	}
	if *folder != "" {
		if err := a.lib.Folders.AddRecording(*folder, r.ID); err != nil {
			return err
		}
	}

	fmt.Fprintf(a.out, "Added %s\n", r.ID)
	if r.Transcription != "" {
		fmt.Fprintln(a.out, r.Transcription)
	}
	return nil
}

// ListRecordings prints the recordings matching the given filter flags.
func (a *App) ListRecordings(_ context.Context, args []string) error {
	fs := newFlagSet("list", a.out)
	q := fs.String("q", "", "title contains")
	cats := fs.String("c", "", "comma separated categories")
	tags := fs.String("tags", "", "comma separated tags")
	fav := fs.Bool("fav", false, "favorites only")
	minD := fs.Float64("min", 0, "minimum duration in seconds")
	maxD := fs.Float64("max", 0, "maximum duration in seconds")
	from := fs.String("from", "", "created on or after "+dateLayout)
	to := fs.String("to", "", "created on or before "+dateLayout)
	storage := fs.String("storage", "", "local or cloud")

	if err := fs.Parse(args); err != nil {
		return err
	}
	set := setFlags(fs)

	f := models.RecordingFilter{Search: *q, Tags: splitList(*tags)}
	var err error
	if f.Categories, err = parseCategories(*cats); err != nil {
		return err
	}
	if set["fav"] {
		f.IsFavorite = fav
	}
	if set["min"] {
		f.MinDuration = minD
	}
	if set["max"] {
		f.MaxDuration = maxD
	}
	if *from != "" {
		if f.DateFrom, err = parseDate(*from, false); err != nil {
			return err
		}
	}
	if *to != "" {
		if f.DateTo, err = parseDate(*to, true); err != nil {
			return err
		}
	}
	if *storage != "" {
		s := models.StorageLocation(*storage)
		if !s.Valid() {
			return fmt.Errorf("storage %q: %w", *storage, common.ErrInvalidArgument)
		}
		f.Storage = &s
	}

	items := a.lib.Recordings.Filter(f)
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No recordings")
		return nil
	}
	for _, r := range items {
		a.printRecordingLine(r)
	}
	return nil
}

func (a *App) ShowRecording(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	r, ok := a.lib.Recordings.Get(args[0])
	if !ok {
		return fmt.Errorf("recording %s: %w", args[0], common.ErrNotFound)
	}

	fmt.Fprintf(a.out, "ID:        %s\n", r.ID)
	fmt.Fprintf(a.out, "Title:     %s\n", r.Title)
	fmt.Fprintf(a.out, "Duration:  %s\n", formatSeconds(r.Duration))
	fmt.Fprintf(a.out, "Size:      %d bytes\n", r.Size)
	fmt.Fprintf(a.out, "Category:  %s\n", r.Category)
	fmt.Fprintf(a.out, "Storage:   %s\n", r.StorageLocation)
	fmt.Fprintf(a.out, "Created:   %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(a.out, "Favorite:  %t\n", r.IsFavorite)
	fmt.Fprintf(a.out, "URI:       %s\n", r.URI)
	if len(r.Tags) > 0 {
		fmt.Fprintf(a.out, "Tags:      %s\n", strings.Join(r.Tags, ", "))
	}
	var names []string
	for _, id := range a.lib.Folders.FoldersOf(r.ID) {
		if f, ok := a.lib.Folders.Get(id); ok {
			names = append(names, f.Name)
		}
	}
	if len(names) > 0 {
		fmt.Fprintf(a.out, "Folders:   %s\n", strings.Join(names, ", "))
	}
	if sh, ok := a.lib.Collaboration.SharedRecording(r.ID); ok {
		fmt.Fprintf(a.out, "Shared by: %s with %d collaborator(s)\n", sh.SharedBy, len(sh.Collaborators))
	}
	if r.Notes != "" {
		fmt.Fprintf(a.out, "Notes:\n%s\n", r.Notes)
	}
	if len(r.Markers) > 0 {
		fmt.Fprintln(a.out, "Markers:")
		for _, m := range r.Markers {
			fmt.Fprintf(a.out, "  %s %6s  %s", m.ID, formatSeconds(m.Timestamp), m.Label)
			if m.Note != "" {
				fmt.Fprintf(a.out, " (%s)", m.Note)
			}
			fmt.Fprintln(a.out)
		}
	}
	if r.Transcription != "" {
		fmt.Fprintf(a.out, "Transcription:\n%s\n", r.Transcription)
	}
	return nil
}

// EditRecording applies only the flags that were given.
func (a *App) EditRecording(_ context.Context, args []string) error {
	fs := newFlagSet("edit", a.out)
	title := fs.String("title", "", "title")
	notes := fs.String("notes", "", "notes")
	category := fs.String("c", "", "category")
	tags := fs.String("tags", "", "comma separated tags, empty to clear")
	duration := fs.Float64("d", 0, "duration in seconds")
	storage := fs.String("storage", "", "local or cloud")
	text := fs.String("text", "", "transcription")

	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return errUsage
	}
	set := setFlags(fs)
	if len(set) == 0 {
		return errUsage
	}

	var p models.RecordingPatch
	if set["title"] {
		p.Title = title
	}
	if set["notes"] {
		p.Notes = notes
	}
	if set["c"] {
		p.Category = models.Ptr(models.Category(*category))
	}
	if set["tags"] {
		p.Tags = models.Ptr(splitList(*tags))
	}
	if set["d"] {
		p.Duration = duration
	}
	if set["storage"] {
		p.StorageLocation = models.Ptr(models.StorageLocation(*storage))
	}
	if set["text"] {
		p.Transcription = text
	}

	if err := a.lib.Recordings.Update(pos[0], p); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Updated")
	return nil
}

func (a *App) ToggleFavorite(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if err := a.lib.Recordings.ToggleFavorite(args[0]); err != nil {
		return err
	}
	r, _ := a.lib.Recordings.Get(args[0])
	if r.IsFavorite {
		fmt.Fprintln(a.out, "Added to favorites")
	} else {
		fmt.Fprintln(a.out, "Removed from favorites")
	}
	return nil
}

// DeleteRecording removes the recording entry. The audio file stays on disk.
func (a *App) DeleteRecording(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if err := a.lib.DeleteRecording(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}

func (a *App) ListTags(_ context.Context, _ []string) error {
	for _, t := range a.lib.Recordings.AllTags() {
		fmt.Fprintln(a.out, t)
	}
	return nil
}

func (a *App) ListCategories(_ context.Context, _ []string) error {
	for _, c := range a.lib.Recordings.Categories() {
		fmt.Fprintln(a.out, c)
	}
	return nil
}

func (a *App) AddMarker(_ context.Context, args []string) error {
	fs := newFlagSet("mark", a.out)
	at := fs.Float64("at", 0, "position in seconds")
	label := fs.String("label", "", "label")
	note := fs.String("note", "", "note")

	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return errUsage
	}

	m, err := a.lib.Recordings.AddMarker(pos[0], models.NewMarker{Timestamp: *at, Label: *label, Note: *note})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Marker %s at %s\n", m.ID, formatSeconds(m.Timestamp))
	return nil
}

func (a *App) EditMarker(_ context.Context, args []string) error {
	fs := newFlagSet("editmark", a.out)
	at := fs.Float64("at", 0, "position in seconds")
	label := fs.String("label", "", "label")
	note := fs.String("note", "", "note")

	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 2 {
		return errUsage
	}
	set := setFlags(fs)

	var p models.MarkerPatch
	if set["at"] {
		p.Timestamp = at
	}
	if set["label"] {
		p.Label = label
	}
	if set["note"] {
		p.Note = note
	}
	if err := a.lib.Recordings.UpdateMarker(pos[0], pos[1], p); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Updated")
	return nil
}

func (a *App) DeleteMarker(_ context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	if err := a.lib.Recordings.DeleteMarker(args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}
