package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// LeaderboardCommand returns the leaderboard command definition and handler
func LeaderboardCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "leaderboard",
		Description: "Show the top players",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "board",
				Description: "Which board to show (default: coins)",
				Required:    false,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Richest users", Value: "coins"},
					{Name: "Biggest collections", Value: "collection"},
				},
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		board := "coins"
		if options := getOptions(i); len(options) > 0 {
			board = options[0].StringValue()
		}

		if board == "collection" {
			handleEmbedResponse(s, i, func() (string, error) {
				entries, err := client.TopCollectors(0)
				if err != nil {
					return "", err
				}
				if len(entries) == 0 {
					return "Nobody has collected a card yet.", nil
				}

				var sb strings.Builder
				for _, e := range entries {
					fmt.Fprintf(&sb, "%s <@%s> — **%d** unique cards\n", rankLabel(e.Rank), e.UserID, e.UniqueCards)
				}
				return sb.String(), nil
			}, ResponseConfig{
				Title: "🃏 Top Collectors",
				Color: 0x9b59b6, // Purple
			})
			return
		}

		handleEmbedResponse(s, i, func() (string, error) {
			entries, err := client.TopBalances(0)
			if err != nil {
				return "", err
			}
			if len(entries) == 0 {
				return "Nobody has any coins yet.", nil
			}

			var sb strings.Builder
			for _, e := range entries {
				fmt.Fprintf(&sb, "%s <@%s> — **%d** coins\n", rankLabel(e.Rank), e.UserID, e.Balance)
			}
			return sb.String(), nil
		}, ResponseConfig{
			Title: "💰 Richest Users",
			Color: 0xf1c40f, // Gold
		})
	}

	return cmd, handler
}

// rankLabel decorates the podium ranks with medals
func rankLabel(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("`#%d`", rank)
	}
}
