package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"storefront/internal/cart"
	"storefront/internal/models"
)

func money(v float64) string {
	return "$ " + strconv.FormatFloat(v, 'f', 2, 64)
}

func printProducts(out io.Writer, products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(out, "No products match.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tBRAND\tCATEGORY\tPRICE\tSTOCK\tFEATURED")
	for _, p := range products {
		featured := ""
		if p.Featured {
			featured = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Brand, p.Category, money(p.Price), p.Stock, featured)
	}
	w.Flush()
}

func printCart(out io.Writer, c *cart.Cart) {
	entries := c.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(out, "Your cart is empty.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tQTY\tSTOCK\tSUBTOTAL")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n", e.ID, e.Name, money(e.Price), e.Quantity, e.Stock, money(e.Subtotal()))
	}
	w.Flush()

	total, count := c.Totals()
	fmt.Fprintf(out, "Items: %d  Total: %s\n", count, money(total))
}

func printUsers(out io.Writer, users []models.User) {
	if len(users) == 0 {
		fmt.Fprintln(out, "No users registered.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tREGISTERED")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.CreatedAt.Format("2006-01-02"))
	}
	w.Flush()
}

func printStats(out io.Writer, s models.ProductStats) {
	fmt.Fprintf(out, "Products: %d  Stock: %d  Inventory value: %s  Featured: %d\n",
		s.TotalProducts, s.TotalStock, money(s.TotalValue), s.FeaturedCount)
}
