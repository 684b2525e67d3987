package payroll

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"
)

type Document struct {
	FileName string
	Content  []byte
}

// Documents renders payslip PDFs and keeps them in a Store. The kafka
// consumer drives it after disbursement; downloads fall back to rendering on
// demand.
//
//go:generate mockgen -source=payslip_document.go -destination=mock/payslip_document_mock.go -package=mock
type Documents interface {
	RenderPeriod(ctx context.Context, companyID, period string) (int, error)
	RenderPayslip(ctx context.Context, companyID, payslipID string) (string, error)
	Open(ctx context.Context, companyID, payslipID string) (Document, error)
}

type documents struct {
	repo   Repository
	store  Store
	logger *zap.Logger
}

func NewDocuments(repo Repository, store Store, logger ...*zap.Logger) Documents {
	l := zap.L().Named("payroll.documents")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.documents")
	}
	return &documents{repo: repo, store: store, logger: l}
}

func documentName(p Payslip) string {
	return fmt.Sprintf("%s-%s.pdf", p.Period, p.ID)
}

// RenderPeriod renders every payslip of the period and returns how many were
// written. It stops at the first failure so the event is redelivered.
func (d *documents) RenderPeriod(ctx context.Context, companyID, period string) (int, error) {
	payslips, err := d.repo.ListPayslips(ctx, companyID, period)
	if err != nil {
		return 0, err
	}

	rendered := 0
	for i := range payslips {
		if err := ctx.Err(); err != nil {
			return rendered, err
		}
		if _, err := d.render(ctx, &payslips[i]); err != nil {
			return rendered, err
		}
		rendered++
	}

	d.logger.Info("payslips rendered",
		zap.String("company_id", companyID),
		zap.String("period", period),
		zap.Int("count", rendered),
	)
	return rendered, nil
}

func (d *documents) RenderPayslip(ctx context.Context, companyID, payslipID string) (string, error) {
	p, err := d.repo.FindPayslipByID(ctx, companyID, payslipID)
	if err != nil {
		return "", mapRepositoryError(err)
	}
	return d.render(ctx, p)
}

func (d *documents) render(ctx context.Context, p *Payslip) (string, error) {
	content, err := RenderPayslipPDF(*p)
	if err != nil {
		return "", err
	}
	path, err := d.store.Save(ctx, documentName(*p), content)
	if err != nil {
		return "", fmt.Errorf("store payslip %s: %w", p.ID, err)
	}
	if err := d.repo.SetPayslipPDF(ctx, p.ID.String(), path); err != nil {
		return "", err
	}
	p.PDFPath = &path
	return path, nil
}

func (d *documents) Open(ctx context.Context, companyID, payslipID string) (Document, error) {
	p, err := d.repo.FindPayslipByID(ctx, companyID, payslipID)
	if err != nil {
		return Document{}, mapRepositoryError(err)
	}

	if p.PDFPath != nil && *p.PDFPath != "" {
		content, err := d.store.Read(ctx, *p.PDFPath)
		if err == nil {
			return Document{FileName: documentName(*p), Content: content}, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return Document{}, err
		}
		d.logger.Warn("payslip document missing, rendering again",
			zap.String("payslip_id", payslipID),
			zap.String("path", *p.PDFPath),
		)
	}

	path, err := d.render(ctx, p)
	if err != nil {
		return Document{}, err
	}
	content, err := d.store.Read(ctx, path)
	if err != nil {
		return Document{}, err
	}
	return Document{FileName: documentName(*p), Content: content}, nil
}
