package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/voicememo/internal/client/models"
)

// Transcribe sends the recording's audio to the server and stores the text
// on the recording.
func (a *App) Transcribe(ctx context.Context, args []string) error {
	fs := newFlagSet("transcribe", a.out)
	lang := fs.String("lang", "", "language, defaults to the configured one")
	prompt := fs.String("prompt", "", "hint for the speech model")

	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return errUsage
	}

	fmt.Fprintln(a.out, "Transcribing...")
	text, err := a.transcriber.TranscribeRecording(ctx, pos[0], models.TranscriptionOptions{Language: *lang, Prompt: *prompt})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, text)
	return nil
}

// History lists the transcriptions the server keeps for the user.
func (a *App) History(ctx context.Context, args []string) error {
	fs := newFlagSet("history", a.out)
	n := fs.Int("n", 20, "number of entries")
	if err := fs.Parse(args); err != nil {
		return err
	}

	items, err := a.api.ListTranscriptions(ctx, *n)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No transcriptions")
		return nil
	}
	for _, t := range items {
		fmt.Fprintf(a.out, "%s [%s] %s\n", t.CreatedAt.Local().Format("2006-01-02 15:04"), t.Language, t.Text)
	}
	return nil
}
