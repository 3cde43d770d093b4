package components

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"
)

func TestLinkState(t *testing.T) {
	if got := linkState("reports", "Reports"); got != "active" {
		t.Fatalf("expected active state when sections match, got %q", got)
	}
	if got := linkState("dashboard", "reports"); got != "inactive" {
		t.Fatalf("expected inactive state when sections differ, got %q", got)
	}
}

func TestStatCardRendersValues(t *testing.T) {
	var buf bytes.Buffer
	err := StatCard("Revenue", "USD 120.00", "+5%", "All time").Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render stat card: %v", err)
	}
	output := buf.String()
	for _, token := range []string{"Revenue", "USD 120.00", "+5%", "All time"} {
		if !strings.Contains(output, token) {
			t.Fatalf("expected output to contain %q: %s", token, output)
		}
	}
}

func TestTableEscapesAndPadsCells(t *testing.T) {
	var buf bytes.Buffer
	rows := [][]string{{"<b>fish</b>", "2"}, {"chips"}}
	if err := Table("stock", []string{"Name", "Qty"}, rows).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render table: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<b>fish</b>") || !strings.Contains(out, "&lt;b&gt;fish&lt;/b&gt;") {
		t.Fatalf("expected cell content to be escaped: %s", out)
	}
	if strings.Count(out, "<td>") != 4 {
		t.Fatalf("expected short rows to be padded: %s", out)
	}

	buf.Reset()
	if err := Table("stock", []string{"Name"}, nil).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render empty table: %v", err)
	}
	if !strings.Contains(buf.String(), "Nothing to show yet.") {
		t.Fatalf("expected empty state row: %s", buf.String())
	}
}

func TestSidebarRendersActiveSection(t *testing.T) {
	data := SidebarData{Active: "reports", Links: DefaultLinks()}
	var buf bytes.Buffer
	if err := Sidebar(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render sidebar: %v", err)
	}
	out := buf.String()
	if strings.Count(out, "data-state=\"active\"") != 1 {
		t.Fatalf("expected exactly one active link in sidebar output: %s", out)
	}
	if !strings.Contains(out, "data-nav-section=\"reports\" data-state=\"active\"") {
		t.Fatalf("expected reports link to be active: %s", out)
	}
}

func TestMessageSkipsBlankText(t *testing.T) {
	var buf bytes.Buffer
	if err := Message("error", "  ").Render(context.Background(), &buf); err != nil {
		t.Fatalf("render message: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for blank message, got %q", buf.String())
	}
}

func TestMoneyAndQuantity(t *testing.T) {
	if got := Money(decimal.RequireFromString("12.5"), "USD"); got != "USD 12.50" {
		t.Fatalf("Money() = %q", got)
	}
	if got := Money(decimal.RequireFromString("3"), ""); got != "3.00" {
		t.Fatalf("Money() without currency = %q", got)
	}
	if got := Quantity(decimal.RequireFromString("2.5"), "kg"); got != "2.5 kg" {
		t.Fatalf("Quantity() = %q", got)
	}
	if got := Quantity(decimal.NewFromFloat(0.7000000000000001), "l"); got != "0.7 l" {
		t.Fatalf("Quantity() with float residue = %q", got)
	}
}

func TestMarkupStopsAfterFirstError(t *testing.T) {
	failing := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return errors.New("boom")
	})
	var buf bytes.Buffer
	m := NewMarkup(context.Background(), &buf)
	m.Raw("a").Component(failing).Raw("b")
	if m.Err() == nil || buf.String() != "a" {
		t.Fatalf("expected markup to stop after error, got %q err=%v", buf.String(), m.Err())
	}
}
