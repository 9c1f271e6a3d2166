package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"sitechrome/internal/domain"
	"sitechrome/internal/gallery"
)

func newGalleryCommand(a *app) *cobra.Command {
	galleryCmd := &cobra.Command{
		Use:   "gallery",
		Short: "Inspect the media gallery",
	}

	var kind string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List gallery items in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := gallery.Load(a.cfg.GalleryPath)
			if err != nil {
				return err
			}
			if kind != "" {
				k := domain.MediaKind(kind)
				if !k.Valid() {
					return fmt.Errorf("unknown kind %q (want photo or video)", kind)
				}
				items = gallery.FilterByKind(items, k)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), galleryTable(items))
			return err
		},
	}
	listCmd.Flags().StringVarP(&kind, "kind", "k", "", "only list items of this kind (photo, video)")

	galleryCmd.AddCommand(listCmd)
	return galleryCmd
}

// galleryTable renders items as a borderless table with a bold header row
func galleryTable(items []domain.GalleryItem) string {
	cell := lipgloss.NewStyle().PaddingRight(2)
	header := cell.Bold(true)

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		Headers("#", "ID", "KIND", "TITLE", "MEDIA").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for i, item := range items {
		t.Row(strconv.Itoa(i+1), item.ID, string(item.Kind), item.Title, item.MediaSrc)
	}
	return t.String()
}
