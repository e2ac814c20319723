package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
)

// rarityLabels maps rarity tiers to display names
var rarityLabels = map[int]string{
	domain.RarityCommon:    "Common",
	domain.RarityUncommon:  "Uncommon",
	domain.RarityRare:      "Rare",
	domain.RarityEpic:      "Epic",
	domain.RarityLegendary: "Legendary",
}

func rarityLabel(rarity int) string {
	if label, ok := rarityLabels[rarity]; ok {
		return label
	}
	return fmt.Sprintf("Tier %d", rarity)
}

// AlbumCommand returns the album command definition and handler
func AlbumCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "album",
		Description: "View your card collection",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)

			items, err := client.GetInventory(user.ID)
			if err != nil {
				return "", err
			}

			if len(items) == 0 {
				return "Your album is empty. Try `/drop` to pull your first card!", nil
			}

			return formatAlbum(items), nil
		}, ResponseConfig{
			Title: "📖 Card Album",
			Color: 0x3498db, // Blue
		})
	}

	return cmd, handler
}

// formatAlbum renders inventory items grouped under rarity headings.
// Items arrive rarest-first from the API, so headings come out in that order.
func formatAlbum(items []domain.InventoryItem) string {
	var sb strings.Builder
	currentRarity := -1

	for _, item := range items {
		if item.Card.Rarity != currentRarity {
			currentRarity = item.Card.Rarity
			fmt.Fprintf(&sb, "**%s**\n", rarityLabel(currentRarity))
		}
		fmt.Fprintf(&sb, "`%s` %s ×%d\n", item.Card.Code, item.Card.Name, item.Quantity)
	}

	return sb.String()
}

// GiftCommand returns the gift command definition and handler
func GiftCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "gift",
		Description: "Give card copies to another user",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "recipient",
				Description: "User to gift cards to",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "card",
				Description: "Card code to gift",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "quantity",
				Description: "Copies to gift (default: 1)",
				Required:    false,
				MinValue:    &minOne,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			options := getOptions(i)
			recipient := options[0].UserValue(s)
			cardCode := options[1].StringValue()
			quantity := 1
			if len(options) > 2 {
				quantity = int(options[2].IntValue())
			}

			card, err := client.GetCard(cardCode)
			if err != nil {
				return "", err
			}

			if err := client.Gift(user.ID, recipient.ID, card.ID, quantity); err != nil {
				return "", err
			}

			return fmt.Sprintf("Gifted **%d× %s** to <@%s>.", quantity, card.Name, recipient.ID), nil
		}, ResponseConfig{
			Title: "🎁 Gift Sent",
			Color: 0x9b59b6, // Purple
		})
	}

	return cmd, handler
}
