package seed

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/turtacn/InfringeScope/internal/domain/company"
	"github.com/turtacn/InfringeScope/internal/domain/infringement"
	"github.com/turtacn/InfringeScope/internal/domain/patent"
	domainseed "github.com/turtacn/InfringeScope/internal/domain/seed"
	"github.com/turtacn/InfringeScope/internal/domain/store"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
)

// batch holds the valid records of one source, ready to insert.
type batch struct {
	companies []*company.Company
	patents   []*patent.Patent
	analyses  []*infringement.Analysis
}

func (b *batch) insert(ctx context.Context, tx store.Repositories) (inserted, duplicates int, err error) {
	for _, c := range b.companies {
		ok, err := tx.Companies().Insert(ctx, c)
		if err != nil {
			return 0, 0, err
		}
		if ok {
			inserted++
		} else {
			duplicates++
		}
	}
	for _, p := range b.patents {
		ok, err := tx.Patents().Insert(ctx, p)
		if err != nil {
			return 0, 0, err
		}
		if ok {
			inserted++
		} else {
			duplicates++
		}
	}
	for _, a := range b.analyses {
		if err := tx.Analyses().Insert(ctx, a); err != nil {
			return 0, 0, err
		}
		inserted++
	}
	return inserted, duplicates, nil
}

// decode parses the whole document for src.  Skipped records are logged and
// counted in rep.Invalid; only a document-level problem is returned.
func (l *Loader) decode(src domainseed.Source, raw []byte, log logging.Logger, rep *SourceReport) (*batch, error) {
	var (
		items []json.RawMessage
		err   error
	)
	switch src {
	case domainseed.SourceCompanies:
		items, err = decodeCompaniesDocument(raw)
	case domainseed.SourcePatents:
		items, err = decodeList(raw, "patent")
	default:
		items, err = decodeList(raw, "infringement analysis")
	}
	if err != nil {
		return nil, err
	}

	b := &batch{}
	now := l.now()
	for i, it := range items {
		var perr error
		switch src {
		case domainseed.SourceCompanies:
			var c *company.Company
			if c, perr = parseCompany(it); perr == nil {
				b.companies = append(b.companies, c)
			}
		case domainseed.SourcePatents:
			var p *patent.Patent
			if p, perr = parsePatent(it); perr == nil {
				b.patents = append(b.patents, p)
			}
		default:
			var a *infringement.Analysis
			if a, perr = parseAnalysis(it, now); perr == nil {
				b.analyses = append(b.analyses, a)
			}
		}
		if perr == nil {
			continue
		}

		rep.Invalid++
		var bad errBadDate
		if stderrors.As(perr, &bad) {
			log.Error("Invalid date format in entry, skipping", logging.Int("index", i), logging.Err(perr))
		} else {
			log.Warn("Skipping entry", logging.Int("index", i), logging.String("reason", perr.Error()))
		}
	}
	return b, nil
}

//Personal.AI order the ending
