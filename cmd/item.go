package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tigawane/internal/bootstrap"
	"tigawane/internal/bootstrap/logging"
	"tigawane/internal/domain/geo"
	"tigawane/internal/errs"
	"tigawane/internal/usecase/location"
	"tigawane/internal/usecase/sharing"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Share and browse items",
}

var itemShareCmd = &cobra.Command{
	Use:   "share",
	Short: "Share a new item",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *sharing.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		owner, _ := cmd.Flags().GetString("as")
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		category, _ := cmd.Flags().GetString("category")
		itemType, _ := cmd.Flags().GetString("type")
		quantity, _ := cmd.Flags().GetInt("quantity")
		condition, _ := cmd.Flags().GetString("condition")
		expiry, _ := cmd.Flags().GetString("expiry")
		address, _ := cmd.Flags().GetString("address")
		photoPath, _ := cmd.Flags().GetString("photo")

		in := sharing.ShareItemInput{
			OwnerID:       owner,
			Title:         title,
			Description:   description,
			Category:      category,
			ItemType:      itemType,
			Quantity:      quantity,
			Condition:     condition,
			ExpiryDate:    expiry,
			PickupAddress: address,
		}
		in.LastKnown = flagCoordinate(cmd, "last-lat", "last-lon")
		if device := flagCoordinate(cmd, "device-lat", "device-lon"); device != nil {
			in.Locator = location.StaticLocator{Position: *device}
		}

		if photoPath != "" {
			photo, err := os.Open(photoPath)
			if err != nil {
				return errs.Wrap(err, "open photo")
			}
			defer photo.Close()
			in.Photo = photo
			in.PhotoName = filepath.Base(photoPath)
		}

		item, err := svc.ShareItem(ctx, in)
		if err != nil {
			return errs.Wrap(err, "share item")
		}
		return printJSON(cmd, item)
	}),
}

var itemListCmd = &cobra.Command{
	Use:   "list",
	Short: "List shared items",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *sharing.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		owner, _ := cmd.Flags().GetString("owner")
		category, _ := cmd.Flags().GetString("category")
		itemType, _ := cmd.Flags().GetString("type")
		status, _ := cmd.Flags().GetString("status")
		all, _ := cmd.Flags().GetBool("all")

		items, err := svc.ListItems(ctx, sharing.ListItemsInput{
			OwnerID:         owner,
			Category:        category,
			ItemType:        itemType,
			Status:          status,
			IncludeComplete: all,
		})
		if err != nil {
			return errs.Wrap(err, "list items")
		}

		for _, item := range items {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s [%s] %s qty=%d owner=%s at=%s\n",
				item.ItemID, item.Status, item.Title, item.Quantity, item.OwnerID, item.PickupAddress); err != nil {
				return errs.Wrap(err, "write item line")
			}
		}
		return nil
	}),
}

var itemNearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "List available items around a coordinate",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *sharing.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		lat, _ := cmd.Flags().GetString("lat")
		lon, _ := cmd.Flags().GetString("lon")
		radiusKm, _ := cmd.Flags().GetFloat64("radius-km")

		center, err := geo.ParseCoordinate(lat, lon)
		if err != nil {
			return errs.Wrap(err, "parse center coordinate")
		}

		items, err := svc.ListNearbyItems(ctx, sharing.NearbyInput{Center: center, RadiusKm: radiusKm})
		if err != nil {
			return errs.Wrap(err, "list nearby items")
		}

		for _, item := range items {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%.4f, %.4f) qty=%d\n",
				item.ItemID, item.Title, item.Latitude, item.Longitude, item.Quantity); err != nil {
				return errs.Wrap(err, "write item line")
			}
		}
		return nil
	}),
}

var itemGetCmd = &cobra.Command{
	Use:   "get <item-id>",
	Short: "Show one item with its claims",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *sharing.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
		detail, err := svc.GetItem(ctx, cmd.Flags().Arg(0))
		if err != nil {
			return errs.Wrap(err, "get item")
		}
		return printJSON(cmd, detail)
	}),
}

var itemRemoveCmd = &cobra.Command{
	Use:   "remove <item-id>",
	Short: "Remove your listing",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *sharing.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
		actor, _ := cmd.Flags().GetString("as")

		if err := svc.DeleteItem(ctx, cmd.Flags().Arg(0), actor); err != nil {
			return errs.Wrap(err, "remove item")
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "item removed")
		return err
	}),
}

// flagCoordinate builds an optional coordinate from a flag pair; both must
// parse or the pair is ignored.
func flagCoordinate(cmd *cobra.Command, latFlag, lonFlag string) *geo.Coordinate {
	lat, _ := cmd.Flags().GetString(latFlag)
	lon, _ := cmd.Flags().GetString(lonFlag)
	if lat == "" || lon == "" {
		return nil
	}
	c, err := geo.ParseCoordinate(lat, lon)
	if err != nil {
		return nil
	}
	return &c
}

func printJSON(cmd *cobra.Command, value any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return errs.Wrap(err, "encode output")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(itemCmd)
	itemCmd.AddCommand(itemShareCmd, itemListCmd, itemNearbyCmd, itemGetCmd, itemRemoveCmd)

	itemShareCmd.Flags().String("as", "", "Acting user id")
	itemShareCmd.Flags().String("title", "", "Item title")
	itemShareCmd.Flags().String("description", "", "Item description")
	itemShareCmd.Flags().String("category", "", "Catalog category")
	itemShareCmd.Flags().String("type", "food", "Item type (food|non-food)")
	itemShareCmd.Flags().Int("quantity", 1, "Quantity on offer")
	itemShareCmd.Flags().String("condition", "", "Condition (non-food items)")
	itemShareCmd.Flags().String("expiry", "", "Expiry date (food items)")
	itemShareCmd.Flags().String("address", "", "Pickup address")
	itemShareCmd.Flags().String("device-lat", "", "Device latitude (fresh GPS reading)")
	itemShareCmd.Flags().String("device-lon", "", "Device longitude (fresh GPS reading)")
	itemShareCmd.Flags().String("last-lat", "", "Last known latitude (cached reading)")
	itemShareCmd.Flags().String("last-lon", "", "Last known longitude (cached reading)")
	itemShareCmd.Flags().String("photo", "", "Path to a photo file")

	itemListCmd.Flags().String("owner", "", "Filter by owner")
	itemListCmd.Flags().String("category", "", "Filter by category")
	itemListCmd.Flags().String("type", "", "Filter by item type")
	itemListCmd.Flags().String("status", "", "Filter by status")
	itemListCmd.Flags().Bool("all", false, "Include completed items")

	itemNearbyCmd.Flags().String("lat", "", "Center latitude")
	itemNearbyCmd.Flags().String("lon", "", "Center longitude")
	itemNearbyCmd.Flags().Float64("radius-km", 10, "Search radius in kilometers")

	itemRemoveCmd.Flags().String("as", "", "Acting user id")
}
