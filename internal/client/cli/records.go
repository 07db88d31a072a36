package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/petguard/internal/carelog"
	"github.com/dmitrijs2005/petguard/internal/client/models"
	"github.com/dmitrijs2005/petguard/internal/client/services"
	"github.com/dmitrijs2005/petguard/internal/common"
)

func parseID(args []string) (uint64, error) {
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: record id %q", common.ErrValidation, args[0])
	}
	return id, nil
}

// Create prompts for a record and submits it. An empty confidential value
// creates a record without a confidential field.
func (a *App) Create(ctx context.Context) error {
	cat, err := getSimpleText(a.reader, "Category (feeding, medication, activity)", a.out)
	if err != nil {
		return err
	}
	category, err := carelog.ParseCategory(cat)
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description", a.out)
	if err != nil {
		return err
	}

	raw, err := getSimpleText(a.reader, "Confidential value (empty for none)", a.out)
	if err != nil {
		return err
	}
	var value *uint64
	if raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: value %q", common.ErrValidation, raw)
		}
		value = &v
	}

	id, err := a.recordService.Create(ctx, a.signer, category, title, description, value)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created record #%d\n", id)
	return nil
}

func (a *App) Get(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	r, err := a.recordService.Get(ctx, id)
	if err != nil {
		return err
	}
	printRecord(a, r)
	return nil
}

func printRecord(a *App, r *models.Record) {
	fmt.Fprintln(a.out, r.String())
	fmt.Fprintf(a.out, "  owner: %s\n", r.Owner.Hex())
	if r.Description != "" {
		fmt.Fprintf(a.out, "  description: %s\n", r.Description)
	}
	if r.HasConfidentialField {
		fmt.Fprintf(a.out, "  handle: %s\n", r.Handle.Hex())
	}
}

// List prints the caller's records in creation order.
func (a *App) List(ctx context.Context) error {
	records, err := a.recordService.List(ctx, a.signer.Address())
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(a.out, "No records")
		return nil
	}
	for _, r := range records {
		fmt.Fprintln(a.out, r.String())
	}
	return nil
}

func (a *App) Decrypt(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	v, err := a.recordService.Decrypt(ctx, id, a.signer)
	if errors.Is(err, services.ErrNoConfidentialField) {
		fmt.Fprintf(a.out, "Record #%d has no confidential field\n", id)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Record #%d value: %d\n", id, v)
	return nil
}

func (a *App) Total(ctx context.Context) error {
	total, err := a.recordService.Total(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Total records: %d\n", total)
	return nil
}
