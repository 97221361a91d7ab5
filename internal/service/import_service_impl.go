package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/fleksjobb/internal/db"
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/importer"
	"github.com/alexanderramin/fleksjobb/internal/repository"
	"github.com/google/uuid"
)

// ImportService loads seed files into the database.
type ImportService interface {
	Import(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}

type ImportResult struct {
	Companies    int
	Users        int
	Jobs         int
	Applications int
	Payments     int
}

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) Import(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading seed file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

// ImportSchema writes a seed in one transaction. Companies already
// registered under the same org number are reused; an email that is
// already taken aborts the whole import with repository.ErrConflict.
func (s *importService) ImportSchema(ctx context.Context, schema *importer.ImportSchema) (res *ImportResult, err error) {
	done := startUseCase(ctx, s.observer, "seed.import", nil)
	defer func() { done(err) }()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	seed, err := importer.Convert(schema, now())
	if err != nil {
		return nil, fmt.Errorf("converting seed: %w", err)
	}

	res = &ImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		companies := repository.NewSQLiteCompanyRepo(tx)
		users := repository.NewSQLiteUserRepo(tx)
		jobs := repository.NewSQLiteJobRepo(tx)
		apps := repository.NewSQLiteApplicationRepo(tx)
		workLogs := repository.NewSQLiteWorkLogRepo(tx)
		payments := repository.NewSQLitePaymentRepo(tx)

		remap := make(map[string]string)
		for _, c := range seed.Companies {
			existing, err := companies.GetByOrgNumber(ctx, c.OrgNumber)
			switch {
			case err == nil:
				remap[c.ID] = existing.ID
				continue
			case !errors.Is(err, repository.ErrNotFound):
				return err
			}
			if err := companies.Create(ctx, c); err != nil {
				return fmt.Errorf("creating company %q: %w", c.Name, err)
			}
			res.Companies++
		}
		for _, u := range seed.Users {
			if id, ok := remap[u.CompanyID]; ok {
				u.CompanyID = id
			}
			if err := users.Create(ctx, u); err != nil {
				return fmt.Errorf("creating user %q: %w", u.Email, err)
			}
			res.Users++
		}
		for _, j := range seed.Jobs {
			if id, ok := remap[j.CompanyID]; ok {
				j.CompanyID = id
			}
			if err := jobs.Create(ctx, j); err != nil {
				return fmt.Errorf("creating job %q: %w", j.Title, err)
			}
			res.Jobs++
			if j.AssignedStudentID == "" || j.HoursLogged <= 0 {
				continue
			}
			if err := workLogs.Create(ctx, &domain.WorkLog{
				ID:        uuid.New().String(),
				JobID:     j.ID,
				StudentID: j.AssignedStudentID,
				Hours:     j.HoursLogged,
				Note:      "Imported",
				LoggedAt:  j.CreatedAt,
			}); err != nil {
				return fmt.Errorf("logging hours for %q: %w", j.Title, err)
			}
			if j.Status != domain.JobCompleted {
				continue
			}
			if err := payments.Create(ctx, &domain.Payment{
				ID:         uuid.New().String(),
				JobID:      j.ID,
				StudentID:  j.AssignedStudentID,
				EmployerID: j.EmployerID,
				AmountNOK:  j.EarnedNOK(),
				Status:     domain.PaymentPending,
				CreatedAt:  j.CreatedAt,
			}); err != nil {
				return fmt.Errorf("creating payment for %q: %w", j.Title, err)
			}
			res.Payments++
		}
		for _, a := range seed.Applications {
			if err := apps.Create(ctx, a); err != nil {
				return fmt.Errorf("creating application: %w", err)
			}
			res.Applications++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func formatValidationErrors(errs []error) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = "  - " + e.Error()
	}
	return fmt.Errorf("seed file has %d problem(s):\n%s", len(errs), strings.Join(msgs, "\n"))
}
