package inquiries

import (
	"net/http"

	"cocomanthra_server/lib"
	"cocomanthra_server/services"
	"cocomanthra_server/structs"

	"github.com/MonkyMars/gecho"
)

// CreateInquiry handles POST /inquiries. The inquiry is accepted as long
// as the body validates; email delivery to the owner is best effort. The
// response always carries the direct contact links so the visitor can
// follow up over phone or WhatsApp.
func (irm *InquiryRoutesManager) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[services.InquiryRequest](r)
	if err != nil {
		irm.logger.Debug("Failed to extract and validate body", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("Please check the inquiry details and try again"),
			gecho.Send(),
		)
		return
	}

	var product *structs.Product
	if body.ProductID != "" {
		if p, ok := irm.catalog.GetProductByID(body.ProductID); ok {
			product = &p
		}
	}

	if err := irm.inquiryService.SendInquiry(*body, product); err != nil {
		irm.logger.Warn("Inquiry email not delivered", gecho.Field("error", err))
	}

	contact := irm.inquiryService.BaseContactLinks()
	if product != nil {
		contact = irm.inquiryService.BuildContactLinks(*product)
	}

	gecho.Success(w,
		gecho.WithMessage("Inquiry received"),
		gecho.WithData(map[string]any{
			"contact": contact,
		}),
		gecho.Send(),
	)
}
