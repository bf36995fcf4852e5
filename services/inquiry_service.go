package services

import (
	"fmt"
	"net/url"
	"sync"

	"cocomanthra_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	emailClient *resend.Client
	clientOnce  = sync.Once{}
)

// ContactLinks are the direct-contact targets rendered alongside a product.
// Ordering happens over phone or WhatsApp, not through a checkout flow.
type ContactLinks struct {
	Phone    string `json:"phone"`
	WhatsApp string `json:"whatsapp"`
}

// InquiryRequest is a visitor's order inquiry, forwarded to the shop owner
// by email.
type InquiryRequest struct {
	Name      string `json:"name" validate:"required,max=120"`
	Email     string `json:"email" validate:"required,email"`
	ProductID string `json:"product_id" validate:"omitempty,uuid"`
	Message   string `json:"message" validate:"required,max=2000"`
}

type InquiryService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewInquiryService(logger *gecho.Logger, cfg *structs.Config) *InquiryService {
	return &InquiryService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	clientOnce.Do(func() {
		emailClient = resend.NewClient(apiKey)
	})
	return emailClient
}

// BaseContactLinks renders the plain contact targets shown in the footer.
func (is *InquiryService) BaseContactLinks() ContactLinks {
	return ContactLinks{
		Phone:    "tel:" + is.cfg.Contact.Phone,
		WhatsApp: "https://wa.me/" + is.cfg.Contact.WhatsApp,
	}
}

// BuildContactLinks renders the tel: and WhatsApp deep links for a product.
// The WhatsApp message carries the product details so the owner knows what
// the inquiry is about.
func (is *InquiryService) BuildContactLinks(product structs.Product) ContactLinks {
	message := fmt.Sprintf(`Hi! I'm interested in ordering this product from CocoManthra:

🌴 *%s*
💰 Price: ₹%v
📦 Collection: %s

📝 Description: %s

Could you please provide more details about availability, shipping, and payment options?

Thank you!`, product.Name, product.Price, product.Collection, product.Description)

	return ContactLinks{
		Phone:    "tel:" + is.cfg.Contact.Phone,
		WhatsApp: fmt.Sprintf("https://wa.me/%s?text=%s", is.cfg.Contact.WhatsApp, url.QueryEscape(message)),
	}
}

// SendInquiry forwards an order inquiry to the shop owner. Email delivery
// is best effort; a disabled or failing email backend does not reject the
// inquiry.
func (is *InquiryService) SendInquiry(req InquiryRequest, product *structs.Product) error {
	if !is.cfg.Email.Enabled {
		is.logger.Debug("Email disabled, inquiry logged only",
			gecho.Field("from", req.Email))
		return nil
	}

	subject := fmt.Sprintf("New order inquiry from %s", req.Name)
	productLine := ""
	if product != nil {
		subject = fmt.Sprintf("New inquiry about %s", product.Name)
		productLine = fmt.Sprintf("<p><strong>Product:</strong> %s (₹%v, %s)</p>",
			product.Name, product.Price, product.Collection)
	}

	body := fmt.Sprintf(`
		<h2>New order inquiry</h2>
		<p><strong>Name:</strong> %s</p>
		<p><strong>Email:</strong> %s</p>
		%s
		<p>%s</p>
	`, req.Name, req.Email, productLine, req.Message)

	params := &resend.SendEmailRequest{
		From:    is.cfg.Email.From,
		To:      []string{is.cfg.Email.OwnerTo},
		ReplyTo: req.Email,
		Html:    body,
		Subject: subject,
	}

	_, err := is.client.Emails.Send(params)
	if err != nil {
		is.logger.Error("Failed to send inquiry email",
			gecho.Field("error", err),
			gecho.Field("from", req.Email),
		)
		return err
	}

	return nil
}
