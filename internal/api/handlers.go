package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-kit/log"
	"github.com/govalues/decimal"

	"github.com/govalues/moneytax/internal/service"
	"github.com/govalues/moneytax/money"
	"github.com/govalues/moneytax/tax"
)

// rateScale is the number of digits kept when reporting tax rates.
const rateScale = 6

// Handlers groups all HTTP handler methods and their dependencies.
type Handlers struct {
	svc    service.Service
	logger log.Logger
}

// --- helpers ---

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Log("msg", "encode response", "err", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound),
		errors.Is(err, money.ErrRateNotFound),
		errors.Is(err, tax.ErrDeductionNotFound):
		return http.StatusNotFound
	case errors.Is(err, money.ErrInvalidRate):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

type amountJSON struct {
	Currency money.Currency `json:"currency"`
	Amount   string         `json:"amount"`
}

func newAmountJSON(a money.Amount) amountJSON {
	return amountJSON{Currency: a.Curr(), Amount: a.RoundToCurr().Decimal().String()}
}

type rateJSON struct {
	Base  money.Currency `json:"base"`
	Quote money.Currency `json:"quote"`
	Rate  string         `json:"rate"`
}

func newRateJSON(r money.ExchangeRate) rateJSON {
	return rateJSON{Base: r.Base(), Quote: r.Quote(), Rate: r.Decimal().String()}
}

type bracketJSON struct {
	Min  string `json:"min"`
	Max  string `json:"max,omitempty"`
	Rate string `json:"rate"`
}

func newBracketJSON(b tax.Bracket) bracketJSON {
	j := bracketJSON{Min: b.Min().Decimal().String(), Rate: b.Rate().String()}
	if max, ok := b.Max(); ok {
		j.Max = max.Decimal().String()
	}
	return j
}

// --- Convert ---

func (h *Handlers) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	amount, err := money.ParseAmount(q.Get("from"), q.Get("amount"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := money.ParseCurr(q.Get("to"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.svc.Convert(r.Context(), amount, to)
	if err != nil {
		h.writeError(w, statusFor(err), err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"original": newAmountJSON(c.Original),
		"rate":     newRateJSON(c.Rate),
		"amount":   newAmountJSON(c.Amount),
	})
}

// --- Compare ---

func (h *Handlers) Compare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a, err := money.ParseAmount(q.Get("a_curr"), q.Get("a"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "a: "+err.Error())
		return
	}
	b, err := money.ParseAmount(q.Get("b_curr"), q.Get("b"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "b: "+err.Error())
		return
	}

	c, err := h.svc.Compare(r.Context(), a, b)
	if err != nil {
		h.writeError(w, statusFor(err), err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"a":       newAmountJSON(a),
		"b":       newAmountJSON(b),
		"cmp":     c,
		"less":    c < 0,
		"equal":   c == 0,
		"greater": c > 0,
	})
}

// --- Rates ---

func (h *Handlers) ListRates(w http.ResponseWriter, r *http.Request) {
	rates := h.svc.Rates(r.Context())
	out := make([]rateJSON, 0, len(rates))
	for _, rate := range rates {
		out = append(out, newRateJSON(rate))
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"rates": out})
}

func (h *Handlers) SetRate(w http.ResponseWriter, r *http.Request) {
	from, err := money.ParseCurr(chi.URLParam(r, "from"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := money.ParseCurr(chi.URLParam(r, "to"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Rate decimal.Decimal `json:"rate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	if err := h.svc.SetRate(r.Context(), from, to, req.Rate); err != nil {
		h.writeError(w, statusFor(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Schedules ---

func (h *Handlers) ListSchedules(w http.ResponseWriter, r *http.Request) {
	type schedule struct {
		Name     string         `json:"name"`
		Currency money.Currency `json:"currency"`
		Brackets []bracketJSON  `json:"brackets"`
	}

	infos := h.svc.Schedules(r.Context())
	out := make([]schedule, 0, len(infos))
	for _, info := range infos {
		s := schedule{Name: info.Name, Currency: info.Curr, Brackets: make([]bracketJSON, 0, len(info.Brackets))}
		for _, b := range info.Brackets {
			s.Brackets = append(s.Brackets, newBracketJSON(b))
		}
		out = append(out, s)
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"schedules": out})
}

// --- Assess ---

func (h *Handlers) Assess(w http.ResponseWriter, r *http.Request) {
	type deduction struct {
		Category tax.Category `json:"category"`
		Amount   string       `json:"amount"`
	}
	type request struct {
		Income     string      `json:"income"`
		Deductions []deduction `json:"deductions"`
	}
	type line struct {
		Bracket bracketJSON `json:"bracket"`
		Tax     amountJSON  `json:"tax"`
	}

	name := chi.URLParam(r, "name")
	curr, ok := h.scheduleCurr(r, name)
	if !ok {
		h.writeError(w, http.StatusNotFound, fmt.Sprintf("%q: %v", name, service.ErrScheduleNotFound))
		return
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	income, err := money.ParseAmount(curr.Code(), req.Income)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "income: "+err.Error())
		return
	}
	deductions := make([]tax.Deduction, 0, len(req.Deductions))
	for i, d := range req.Deductions {
		a, err := money.ParseAmount(curr.Code(), d.Amount)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("deductions[%d]: %v", i, err))
			return
		}
		deductions = append(deductions, tax.Deduction{Category: d.Category, Amount: a})
	}

	a, err := h.svc.Assess(r.Context(), name, income, deductions)
	if err != nil {
		h.writeError(w, statusFor(err), err.Error())
		return
	}

	lines := make([]line, 0, len(a.Lines))
	for _, l := range a.Lines {
		lines = append(lines, line{Bracket: newBracketJSON(l.Bracket), Tax: newAmountJSON(l.Tax)})
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"schedule":       name,
		"income":         newAmountJSON(a.Income),
		"deductions":     newAmountJSON(a.Deductions),
		"taxable":        newAmountJSON(a.Taxable),
		"tax":            newAmountJSON(a.Tax),
		"lines":          lines,
		"effective_rate": a.EffectiveRate.Round(rateScale).String(),
		"marginal_rate":  a.MarginalRate.String(),
	})
}

func (h *Handlers) scheduleCurr(r *http.Request, name string) (money.Currency, bool) {
	for _, info := range h.svc.Schedules(r.Context()) {
		if info.Name == name {
			return info.Curr, true
		}
	}
	return money.XXX, false
}
