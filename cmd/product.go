// ABOUTME: Product commands for the produk CLI
// ABOUTME: List, get, create, update, and delete products over the portal API

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/produkportal/produk-cli/internal/api"
	"github.com/produkportal/produk-cli/internal/tui/pagination"
	"github.com/produkportal/produk-cli/internal/tui/table"
)

var (
	productQuery string
	productPage  int
	productLimit int
	productName  string
	productDesc  string
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage products",
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Long:  `List products with optional search and pagination.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProductList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var productGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProductGet(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var productCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProductCreate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var productUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a product",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProductUpdate(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var productDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProductDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(productCmd)
	productCmd.AddCommand(productListCmd)
	productCmd.AddCommand(productGetCmd)
	productCmd.AddCommand(productCreateCmd)
	productCmd.AddCommand(productUpdateCmd)
	productCmd.AddCommand(productDeleteCmd)

	productListCmd.Flags().StringVarP(&productQuery, "query", "q", "", "Search query")
	productListCmd.Flags().IntVar(&productPage, "page", 1, "Page number")
	productListCmd.Flags().IntVar(&productLimit, "limit", 10, "Items per page")

	productCreateCmd.Flags().StringVar(&productName, "name", "", "Product name")
	productCreateCmd.Flags().StringVar(&productDesc, "description", "", "Product description")
	productCreateCmd.MarkFlagRequired("name")

	productUpdateCmd.Flags().StringVar(&productName, "name", "", "Product name")
	productUpdateCmd.Flags().StringVar(&productDesc, "description", "", "Product description")
	productUpdateCmd.MarkFlagRequired("name")
}

// runProductList fetches one page and returns exit code
func runProductList(ctx context.Context, w io.Writer) int {
	c, _ := newClient()

	items, meta, err := c.ListProducts(ctx, api.ProductFilter{
		Query: productQuery,
		Page:  productPage,
		Limit: productLimit,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		out := struct {
			Items []api.Product `json:"items"`
			Meta  *api.Meta     `json:"meta,omitempty"`
		}{Items: items, Meta: meta}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatProductTable(items, meta))
	return 0
}

// formatProductTable renders a static page view of the product list.
func formatProductTable(items []api.Product, meta *api.Meta) string {
	records := make([]any, len(items))
	for i := range items {
		records[i] = items[i]
	}

	columns := []table.Column{
		{Name: "ID", Accessor: "id"},
		{Name: "Nama", Accessor: "name"},
		{Name: "Deskripsi", Accessor: "description", Truncate: true},
		{Name: "Diperbarui", Accessor: "updated_at", Type: table.TypeDate},
	}
	out := table.New(records, columns, nil, table.Options{}).View()

	if meta != nil {
		out += "\n" + pagination.New(meta.TotalPage, meta.Page, nil).View()
		out += fmt.Sprintf("\nHalaman %d dari %d (%d produk)", meta.Page, meta.TotalPage, meta.TotalCount)
	}
	return out
}

// runProductGet fetches one product and returns exit code
func runProductGet(ctx context.Context, w io.Writer, rawID string) int {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid product id %q\n", rawID)
		return 2
	}

	c, _ := newClient()
	product, err := c.GetProduct(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(product, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "ID:         %d\nNama:       %s\nDeskripsi:  %s\nDibuat:     %s\nDiperbarui: %s\n",
		product.ID, product.Name, product.Description, product.CreatedAt, product.UpdatedAt)
	return 0
}

// runProductCreate creates a product and returns exit code
func runProductCreate(ctx context.Context, w io.Writer) int {
	c, _ := newClient()
	product, err := c.CreateProduct(ctx, productName, productDesc)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(product, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprintf(w, "Produk dibuat (id %d).\n", product.ID)
	return 0
}

// runProductUpdate updates a product and returns exit code
func runProductUpdate(ctx context.Context, w io.Writer, rawID string) int {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid product id %q\n", rawID)
		return 2
	}

	c, _ := newClient()
	product, err := c.UpdateProduct(ctx, id, productName, productDesc)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(product, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprintf(w, "Produk diperbarui (id %d).\n", product.ID)
	return 0
}

// runProductDelete deletes a product and returns exit code
func runProductDelete(ctx context.Context, w io.Writer, rawID string) int {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid product id %q\n", rawID)
		return 2
	}

	c, _ := newClient()
	if err := c.DeleteProduct(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(w, "Produk dihapus (id %d).\n", id)
	return 0
}
