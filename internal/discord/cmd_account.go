package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// BalanceCommand returns the balance command definition and handler
func BalanceCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "balance",
		Description: "Check your coin balance",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)

			resp, err := client.GetBalance(user.ID)
			if err != nil {
				return "", err
			}

			return fmt.Sprintf("You have **%d** coins.", resp.Balance), nil
		}, ResponseConfig{
			Title: "🪙 Balance",
			Color: 0xf1c40f, // Gold
		})
	}

	return cmd, handler
}

// PayCommand returns the pay command definition and handler
func PayCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "pay",
		Description: "Send coins to another user",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "recipient",
				Description: "User to send coins to",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "Coins to send",
				Required:    true,
				MinValue:    &minOne,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			options := getOptions(i)
			recipient := options[0].UserValue(s)
			amount := options[1].IntValue()

			resp, err := client.Pay(user.ID, recipient.ID, amount)
			if err != nil {
				return "", err
			}

			return fmt.Sprintf("Sent **%d** coins to <@%s>.\nYour balance: **%d**", amount, recipient.ID, resp.FromBalance), nil
		}, ResponseConfig{
			Title: "💸 Payment Sent",
			Color: 0x2ecc71, // Green
		})
	}

	return cmd, handler
}

// minOne is the shared MinValue for integer options that must be positive
var minOne = float64(1)
