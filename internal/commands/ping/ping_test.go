package ping

import (
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/discora/internal/command"
	"github.com/keshon/discora/internal/command/commandtest"
)

var cmd = &command.Command{Name: "ping", Description: "test command", Execute: Execute}

func TestExecuteOffersButtons(t *testing.T) {
	rec := &commandtest.Recorder{}
	if err := Execute(rec.Context(commandtest.SlashCommand("ping"), cmd)); err != nil {
		t.Fatal(err)
	}
	resp := rec.Last()
	if resp.Data.Content != "How do you want me to respond" {
		t.Errorf("unexpected content %q", resp.Data.Content)
	}
	row := resp.Data.Components[0].(discordgo.ActionsRow)
	var ids []string
	for _, c := range row.Components {
		ids = append(ids, c.(discordgo.Button).CustomID)
	}
	if len(ids) != 2 || ids[0] != "ping-hello_button" || ids[1] != "ping-hi_button" {
		t.Errorf("unexpected button ids %v", ids)
	}
}

func TestButtons(t *testing.T) {
	tests := []struct {
		customID string
		want     string
	}{
		{"ping-hello_button", "hello world"},
		{"ping-hi_button", "hi"},
		{"ping-other", ""},
	}
	for _, tt := range tests {
		t.Run(tt.customID, func(t *testing.T) {
			rec := &commandtest.Recorder{}
			if err := Buttons(rec.Context(commandtest.Button(tt.customID), cmd)); err != nil {
				t.Fatal(err)
			}
			resp := rec.Last()
			if tt.want == "" {
				if resp != nil {
					t.Errorf("expected no reply, got %+v", resp)
				}
				return
			}
			if resp == nil || resp.Data.Content != tt.want {
				t.Errorf("expected %q, got %+v", tt.want, resp)
			}
		})
	}
}
