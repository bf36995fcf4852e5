package services

import (
	"net/url"
	"strings"
	"testing"

	"cocomanthra_server/structs"

	"github.com/MonkyMars/gecho"
)

func testConfig() *structs.Config {
	return &structs.Config{
		Contact: &structs.ContactConfig{
			Phone:    "+91-9248788585",
			WhatsApp: "919248788585",
		},
		Email: &structs.EmailConfig{
			Enabled: false,
			From:    "noreply@cocomanthra.com",
			OwnerTo: "hello@cocomanthra.com",
		},
	}
}

func TestBuildContactLinks(t *testing.T) {
	is := NewInquiryService(gecho.NewDefaultLogger(), testConfig())

	product := structs.Product{
		Name:        "Coconut Bowl Set",
		Price:       45.99,
		Description: "Set of four polished bowls",
		Collection:  "Bowls & Tableware",
	}

	links := is.BuildContactLinks(product)

	if links.Phone != "tel:+91-9248788585" {
		t.Fatalf("phone link=%q", links.Phone)
	}

	u, err := url.Parse(links.WhatsApp)
	if err != nil {
		t.Fatalf("parse whatsapp link: %v", err)
	}
	if u.Host != "wa.me" || u.Path != "/919248788585" {
		t.Fatalf("whatsapp target=%s%s", u.Host, u.Path)
	}

	text := u.Query().Get("text")
	for _, want := range []string{
		"interested in ordering this product from CocoManthra",
		"*Coconut Bowl Set*",
		"Price: ₹45.99",
		"Collection: Bowls & Tableware",
		"Description: Set of four polished bowls",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("whatsapp message missing %q\nmessage: %s", want, text)
		}
	}
}

func TestBaseContactLinks(t *testing.T) {
	is := NewInquiryService(gecho.NewDefaultLogger(), testConfig())

	links := is.BaseContactLinks()
	if links.Phone != "tel:+91-9248788585" {
		t.Fatalf("phone link=%q", links.Phone)
	}
	if links.WhatsApp != "https://wa.me/919248788585" {
		t.Fatalf("whatsapp link=%q", links.WhatsApp)
	}
}

func TestSendInquiryDisabledEmail(t *testing.T) {
	is := NewInquiryService(gecho.NewDefaultLogger(), testConfig())

	err := is.SendInquiry(InquiryRequest{
		Name:    "A Customer",
		Email:   "customer@example.com",
		Message: "Do you ship to Mumbai?",
	}, nil)
	if err != nil {
		t.Fatalf("send with disabled email: %v", err)
	}
}
