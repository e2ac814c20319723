package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// ShopCommand returns the shop command definition and handler.
// Without a pack option it lists the catalog; with one it buys that pack.
func ShopCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "shop",
		Description: "Browse the card pack shop or buy a pack",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "pack",
				Description: "Pack to buy (leave empty to browse)",
				Required:    false,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Starter Pack (100 coins)", Value: "1"},
					{Name: "Double Pack (200 coins)", Value: "2"},
					{Name: "Premium Pack (500 coins)", Value: "3"},
					{Name: "Ultimate Pack (1000 coins)", Value: "4"},
				},
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		options := getOptions(i)
		if len(options) == 0 {
			handleEmbedResponse(s, i, func() (string, error) {
				packs, err := client.GetPacks()
				if err != nil {
					return "", err
				}

				var sb strings.Builder
				for _, p := range packs {
					fmt.Fprintf(&sb, "**%s** — %d coins for %d card(s)\n", p.Name, p.Cost, p.Cards)
				}
				sb.WriteString("\nUse `/shop pack:<name>` to buy one.")
				return sb.String(), nil
			}, ResponseConfig{
				Title: "🛒 Card Shop",
				Color: 0x3498db, // Blue
			})
			return
		}

		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			packID := options[0].StringValue()

			result, err := client.BuyPack(user.ID, packID)
			if err != nil {
				return "", err
			}

			var sb strings.Builder
			fmt.Fprintf(&sb, "You opened a **%s** and pulled:\n", result.Pack.Name)
			for _, card := range result.Cards {
				fmt.Fprintf(&sb, "`%s` %s (%s)\n", card.Code, card.Name, rarityLabel(card.Rarity))
			}
			fmt.Fprintf(&sb, "New balance: **%d**", result.NewBalance)
			return sb.String(), nil
		}, ResponseConfig{
			Title: "🎁 Pack Opened",
			Color: 0x2ecc71, // Green
		})
	}

	return cmd, handler
}
