package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func createTestInteraction(commandName string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name: commandName,
			},
		},
	}
}

func TestCommandRegistry(t *testing.T) {
	registry := NewCommandRegistry()

	cmd := &discordgo.ApplicationCommand{
		Name:        "test",
		Description: "Test command",
	}

	handlerCalled := false
	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handlerCalled = true
	}

	registry.Register(cmd, handler)

	assert.NotNil(t, registry.Commands["test"])
	assert.NotNil(t, registry.Handlers["test"])

	registry.Handle(nil, createTestInteraction("test"), nil)
	assert.True(t, handlerCalled)

	// Unknown commands are ignored
	registry.Handle(nil, createTestInteraction("unknown"), nil)
}

func TestRegisterAll(t *testing.T) {
	registry := NewCommandRegistry()
	RegisterAll(registry)

	expected := []string{
		"ping", "balance", "pay", "album", "gift",
		"daily", "weekly", "surf", "explore", "drop", "booster", "bonanza",
		"shop", "leaderboard",
		"market-list", "market-buy", "market-cancel", "market-browse", "market-sell",
		"trade-propose", "trade-accept", "trade-decline", "trade-offers",
	}

	assert.Len(t, registry.Commands, len(expected))
	for _, name := range expected {
		assert.Contains(t, registry.Commands, name, "command %q not registered", name)
		assert.Contains(t, registry.Handlers, name, "handler %q not registered", name)
	}
}

func TestCommandsEqual(t *testing.T) {
	a := []*discordgo.ApplicationCommand{
		{Name: "balance", Description: "Check your coin balance"},
	}
	b := []*discordgo.ApplicationCommand{
		{Name: "balance", Description: "Check your coin balance"},
	}

	assert.True(t, commandsEqual(a, b))

	b[0].Description = "Something else"
	assert.False(t, commandsEqual(a, b))

	b = append(b, &discordgo.ApplicationCommand{Name: "pay"})
	assert.False(t, commandsEqual(a, b))
}

func TestRecordCommand(t *testing.T) {
	commandCounter.Store(0)

	RecordCommand()
	RecordCommand()
	RecordCommand()

	assert.Equal(t, int64(3), commandCounter.Load())
	assert.Positive(t, lastCommandUnix.Load())
}
