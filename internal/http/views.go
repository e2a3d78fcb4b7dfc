package http

import (
	"github.com/guttosm/freshcart-pos/internal/analysis"
	"github.com/guttosm/freshcart-pos/internal/domain/dto"
	"github.com/guttosm/freshcart-pos/internal/messages"
	"github.com/guttosm/freshcart-pos/internal/service"
)

func newCartView(s service.CartSnapshot) dto.CartView {
	totals := s.Totals.Rounded()
	return dto.CartView{
		Lines:             dto.NewCartLineViews(s.Lines),
		ItemCount:         s.ItemCount,
		Subtotal:          dto.Money(totals.Subtotal),
		Tax:               dto.Money(totals.Tax),
		Total:             dto.Money(totals.Total),
		TaxRate:           s.TaxRate.String(),
		CheckoutReceiptID: s.CheckoutReceiptID,
	}
}

func newAnalysisView(st analysis.State) dto.AnalysisView {
	v := dto.AnalysisView{
		Status:   string(st.Status),
		Fallback: st.Fallback,
		Busy:     st.InFlight,
	}
	if st.Result != nil {
		v.Result = dto.NewAnalysisResultView(*st.Result)
	}
	return v
}

// newOutcomeView describes a settled request. A discarded outcome shows the
// session as it is now; the notice is only attached to a fallback that was
// kept.
func newOutcomeView(out analysis.Outcome, current analysis.State) dto.AnalysisView {
	if out.Discarded {
		return newAnalysisView(current)
	}
	v := dto.AnalysisView{
		Status:   string(analysis.StatusReady),
		Result:   dto.NewAnalysisResultView(out.Result),
		Fallback: out.Fallback,
	}
	if out.Fallback {
		v.Notice = messages.Text(messages.NoticeAnalysisFallback)
	}
	return v
}
