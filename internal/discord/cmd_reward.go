package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// coinClaimCommand builds a command that claims one timed coin reward
func coinClaimCommand(name, description, action, title string, color int) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        name,
		Description: description,
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)

			result, err := client.ClaimCoins(action, user.ID)
			if err != nil {
				return "", err
			}

			return fmt.Sprintf("You earned **%d** coins!\nNew balance: **%d**", result.Amount, result.NewBalance), nil
		}, ResponseConfig{
			Title: title,
			Color: color,
		})
	}

	return cmd, handler
}

// DailyCommand returns the daily command definition and handler
func DailyCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return coinClaimCommand("daily", "Claim your daily coins", "daily", "🌅 Daily Reward", 0xf1c40f)
}

// WeeklyCommand returns the weekly command definition and handler
func WeeklyCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return coinClaimCommand("weekly", "Claim your weekly coins", "weekly", "📅 Weekly Reward", 0xe67e22)
}

// SurfCommand returns the surf command definition and handler
func SurfCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return coinClaimCommand("surf", "Surf the waves for a coin payout", "surf", "🏄 Surf", 0x3498db)
}

// ExploreCommand returns the explore command definition and handler
func ExploreCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return coinClaimCommand("explore", "Explore the shore for a coin payout", "explore", "🗺️ Explore", 0x1abc9c)
}

// DropCommand returns the drop command definition and handler
func DropCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "drop",
		Description: "Pull a random card",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)

		result, err := client.ClaimDrop(user.ID)
		if err != nil {
			respondFriendlyError(s, i, err.Error())
			return
		}

		card := result.Card
		description := fmt.Sprintf("**%s** `%s`\n%s · %s", card.Name, card.Code, rarityLabel(card.Rarity), card.GroupName)
		embed := createEmbed("✨ Card Drop", description, dropColor(card.Rarity), "")
		if card.ImageURL != "" {
			embed.Image = &discordgo.MessageEmbedImage{URL: card.ImageURL}
		}
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}

// BoosterCommand returns the booster command definition and handler
func BoosterCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "booster",
		Description: "Claim your subscriber booster bundle",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)

			result, err := client.ClaimBooster(user.ID)
			if err != nil {
				return "", err
			}

			var sb strings.Builder
			fmt.Fprintf(&sb, "You earned **%d** coins and **%d** cards:\n", result.Coins, len(result.Cards))
			for _, card := range result.Cards {
				fmt.Fprintf(&sb, "`%s` %s (%s)\n", card.Code, card.Name, rarityLabel(card.Rarity))
			}
			fmt.Fprintf(&sb, "New balance: **%d**", result.NewBalance)

			return sb.String(), nil
		}, ResponseConfig{
			Title: "🎉 Booster Bundle",
			Color: 0xe91e63, // Pink
		})
	}

	return cmd, handler
}

// BonanzaCommand returns the bonanza command definition and handler
func BonanzaCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "bonanza",
		Description: "Claim your subscriber mega bundle",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)

			result, err := client.ClaimBonanza(user.ID)
			if err != nil {
				return "", err
			}

			var sb strings.Builder
			fmt.Fprintf(&sb, "You earned **%d** coins", result.Coins)
			if len(result.Cards) > 0 {
				fmt.Fprintf(&sb, " and **%d** legendary cards:\n", len(result.Cards))
				for _, card := range result.Cards {
					fmt.Fprintf(&sb, "`%s` %s\n", card.Code, card.Name)
				}
			} else {
				sb.WriteString("!\n")
			}
			fmt.Fprintf(&sb, "New balance: **%d**", result.NewBalance)

			return sb.String(), nil
		}, ResponseConfig{
			Title: "💎 Bonanza",
			Color: 0xf1c40f, // Gold
		})
	}

	return cmd, handler
}

// dropColor picks the embed color for a dropped card's rarity
func dropColor(rarity int) int {
	switch rarity {
	case 5:
		return 0xf1c40f // Gold
	case 4:
		return 0x9b59b6 // Purple
	case 3:
		return 0x3498db // Blue
	case 2:
		return 0x2ecc71 // Green
	default:
		return 0x95a5a6 // Grey
	}
}
