package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// MarketListCommand returns the market-list command definition and handler
func MarketListCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "market-list",
		Description: "Put card copies up for sale",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "card",
				Description: "Card code to sell",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "price",
				Description: "Price per copy",
				Required:    true,
				MinValue:    &minOne,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "quantity",
				Description: "Copies to sell (default: 1)",
				Required:    false,
				MinValue:    &minOne,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			options := getOptions(i)
			cardCode := options[0].StringValue()
			price := options[1].IntValue()
			quantity := 1
			if len(options) > 2 {
				quantity = int(options[2].IntValue())
			}

			card, err := client.GetCard(cardCode)
			if err != nil {
				return "", err
			}

			listing, err := client.CreateListing(user.ID, card.ID, price, quantity)
			if err != nil {
				return "", err
			}

			return fmt.Sprintf("Listed **%d× %s** at **%d** coins each.\nListing code: `%s`",
				listing.Quantity, card.Name, listing.UnitPrice, listing.Code), nil
		}, ResponseConfig{
			Title: "🏪 Listing Created",
			Color: 0x2ecc71, // Green
		})
	}

	return cmd, handler
}

// MarketBuyCommand returns the market-buy command definition and handler
func MarketBuyCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "market-buy",
		Description: "Buy a marketplace listing",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "listing",
				Description: "Listing code to buy",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			options := getOptions(i)
			listingCode := options[0].StringValue()

			result, err := client.Purchase(user.ID, listingCode)
			if err != nil {
				return "", err
			}

			return fmt.Sprintf("Bought **%d** copies for **%d** coins.\nYour balance: **%d**",
				result.Listing.Quantity, result.TotalPrice, result.BuyerBalance), nil
		}, ResponseConfig{
			Title: "💰 Purchase Complete",
			Color: 0x2ecc71, // Green
		})
	}

	return cmd, handler
}

// MarketCancelCommand returns the market-cancel command definition and handler
func MarketCancelCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "market-cancel",
		Description: "Take down one of your listings",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "listing",
				Description: "Listing code to cancel",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			options := getOptions(i)
			listingCode := options[0].StringValue()

			if err := client.CancelListing(user.ID, listingCode); err != nil {
				return "", err
			}

			return "Listing cancelled. The copies are back in your album.", nil
		}, ResponseConfig{
			Title: "🗑️ Listing Cancelled",
			Color: 0x95a5a6, // Grey
		})
	}

	return cmd, handler
}

// MarketBrowseCommand returns the market-browse command definition and handler
func MarketBrowseCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "market-browse",
		Description: "Browse active marketplace listings",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "card",
				Description: "Only show listings for this card code",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			options := getOptions(i)
			cardID := 0
			if len(options) > 0 {
				card, err := client.GetCard(options[0].StringValue())
				if err != nil {
					return "", err
				}
				cardID = card.ID
			}

			views, err := client.Browse(cardID)
			if err != nil {
				return "", err
			}

			if len(views) == 0 {
				return "Nothing for sale right now.", nil
			}

			var sb strings.Builder
			for _, v := range views {
				fmt.Fprintf(&sb, "`%s` **%s** — %d× at **%d** each (seller <@%s>)\n",
					v.Listing.Code, v.Card.Name, v.Listing.Quantity, v.Listing.UnitPrice, v.Listing.SellerID)
			}
			return sb.String(), nil
		}, ResponseConfig{
			Title: "🏪 Marketplace",
			Color: 0x3498db, // Blue
		})
	}

	return cmd, handler
}

// MarketSellCommand returns the market-sell command definition and handler
func MarketSellCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "market-sell",
		Description: "Sell copies back to the house at the fixed rarity price",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "card",
				Description: "Card code to sell",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "quantity",
				Description: "Copies to sell (default: 1)",
				Required:    false,
				MinValue:    &minOne,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			options := getOptions(i)
			cardCode := options[0].StringValue()
			quantity := 1
			if len(options) > 1 {
				quantity = int(options[1].IntValue())
			}

			card, err := client.GetCard(cardCode)
			if err != nil {
				return "", err
			}

			result, err := client.SellToHouse(user.ID, card.ID, quantity)
			if err != nil {
				return "", err
			}

			return fmt.Sprintf("Sold **%d× %s** for **%d** coins (%d each).\nYour balance: **%d**",
				quantity, card.Name, result.Total, result.UnitPrice, result.NewBalance), nil
		}, ResponseConfig{
			Title: "💵 Sale Complete",
			Color: 0xf39c12, // Orange
		})
	}

	return cmd, handler
}
