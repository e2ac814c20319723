package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
)

// TradeProposeCommand returns the trade-propose command definition and handler
func TradeProposeCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "trade-propose",
		Description: "Offer one of your cards for one of theirs",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "with",
				Description: "User to trade with",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "give",
				Description: "Card code you offer",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "want",
				Description: "Card code you want back",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			options := getOptions(i)
			counterparty := options[0].UserValue(s)
			giveCode := options[1].StringValue()
			wantCode := options[2].StringValue()

			give, err := client.GetCard(giveCode)
			if err != nil {
				return "", err
			}
			want, err := client.GetCard(wantCode)
			if err != nil {
				return "", err
			}

			offer, err := client.ProposeTrade(user.ID, counterparty.ID, give.ID, want.ID)
			if err != nil {
				return "", err
			}

			return fmt.Sprintf("Offered **%s** for **%s** to <@%s>.\nOffer `%s` expires <t:%d:R>.",
				give.Name, want.Name, counterparty.ID, offer.ID, offer.ExpiresAt.Unix()), nil
		}, ResponseConfig{
			Title: "🤝 Trade Proposed",
			Color: 0x3498db, // Blue
		})
	}

	return cmd, handler
}

// TradeAcceptCommand returns the trade-accept command definition and handler
func TradeAcceptCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "trade-accept",
		Description: "Accept a trade offer made to you",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "offer",
				Description: "Offer ID to accept",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			options := getOptions(i)
			offerID := options[0].StringValue()

			offer, err := client.AcceptTrade(user.ID, offerID)
			if err != nil {
				return "", err
			}

			return fmt.Sprintf("Trade settled with <@%s>. Check your album!", offer.ProposerID), nil
		}, ResponseConfig{
			Title: "✅ Trade Complete",
			Color: 0x2ecc71, // Green
		})
	}

	return cmd, handler
}

// TradeDeclineCommand returns the trade-decline command definition and handler
func TradeDeclineCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "trade-decline",
		Description: "Decline a trade offer, or withdraw your own",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "offer",
				Description: "Offer ID to decline",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			options := getOptions(i)
			offerID := options[0].StringValue()

			if err := client.DeclineTrade(user.ID, offerID); err != nil {
				return "", err
			}

			return "Offer declined.", nil
		}, ResponseConfig{
			Title: "🚫 Trade Declined",
			Color: 0x95a5a6, // Grey
		})
	}

	return cmd, handler
}

// TradeOffersCommand returns the trade-offers command definition and handler
func TradeOffersCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "trade-offers",
		Description: "List your open trade offers",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)

			offers, err := client.ListOffers(user.ID)
			if err != nil {
				return "", err
			}

			open := offers[:0:0]
			now := time.Now()
			for _, o := range offers {
				if o.State == domain.TradeProposed && !o.Expired(now) {
					open = append(open, o)
				}
			}

			if len(open) == 0 {
				return "You have no open trade offers.", nil
			}

			var sb strings.Builder
			for _, o := range open {
				direction := fmt.Sprintf("to <@%s>", o.CounterpartyID)
				if o.CounterpartyID == user.ID {
					direction = fmt.Sprintf("from <@%s>", o.ProposerID)
				}
				fmt.Fprintf(&sb, "`%s` %s — card #%d for card #%d, expires <t:%d:R>\n",
					o.ID, direction, o.OfferedCardID, o.RequestedCardID, o.ExpiresAt.Unix())
			}
			return sb.String(), nil
		}, ResponseConfig{
			Title: "🤝 Open Trades",
			Color: 0x3498db, // Blue
		})
	}

	return cmd, handler
}
