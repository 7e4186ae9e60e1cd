package visit

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/BruksfildServices01/barber-sales/internal/authz"
	domain "github.com/BruksfildServices01/barber-sales/internal/domain/visit"
	"github.com/BruksfildServices01/barber-sales/internal/models"
)

type ExportVisitsOutput struct {
	Filename string
	Visits   []models.Visit
}

type ExportVisits struct {
	repo     domain.Repository
	currency string
}

func NewExportVisits(repo domain.Repository, currency string) *ExportVisits {
	return &ExportVisits{repo: repo, currency: currency}
}

func (uc *ExportVisits) Execute(ctx context.Context, in ListVisitsInput) (*ExportVisitsOutput, error) {
	if err := authz.Check(in.Caller, authz.Admin); err != nil {
		return nil, err
	}

	visits, err := loadVisits(ctx, uc.repo, in, true)
	if err != nil {
		return nil, err
	}
	return &ExportVisitsOutput{
		Filename: ExportFilename(in.From, in.To),
		Visits:   visits,
	}, nil
}

// WriteCSV renders visits with CRLF line endings.
func (uc *ExportVisits) WriteCSV(w io.Writer, visits []models.Visit) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	header := []string{
		"Date", "Barber", "Customer", "Services", "Payment Method",
		"MoMo Reference", fmt.Sprintf("Total (%s)", uc.currency), "Notes",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, v := range visits {
		var barber, customer, reference string
		if v.Barber != nil {
			barber = v.Barber.Name
		}
		if v.Customer != nil {
			customer = v.Customer.Name
		}
		if v.MomoReference != nil {
			reference = *v.MomoReference
		}

		record := []string{
			v.VisitDate,
			barber,
			customer,
			serviceSummary(v.Services),
			domain.ParsePaymentMethod(v.PaymentMethod).Label(),
			reference,
			fmt.Sprintf("%.2f", v.TotalAmount),
			v.Notes,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// serviceSummary renders lines as "Cut x2; Shave".
func serviceSummary(lines []models.VisitService) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		name := ""
		if l.Service != nil {
			name = l.Service.Name
		}
		if l.Quantity > 1 {
			name = fmt.Sprintf("%s x%d", name, l.Quantity)
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, "; ")
}

func ExportFilename(from, to string) string {
	if from == "" {
		from = "all"
	}
	if to == "" {
		to = "all"
	}
	return fmt.Sprintf("visits_%s_to_%s.csv", from, to)
}
