package main

import (
	"context"
	"io"

	"github.com/2x3systems/psmiles/libpsm"
	"github.com/plan-systems/klog"
	"golang.org/x/sync/errgroup"
)

// CheckInputs parses every input with cfg.Workers goroutines and returns the report in input order.
func CheckInputs(ctx context.Context, inputs []string, cfg *Config) (*Report, error) {
	opts, err := cfg.ParseOpts()
	if err != nil {
		return nil, err
	}

	parsed := make([]*libpsm.Structure, len(inputs))
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(cfg.Workers)
	for i := range inputs {
		i := i
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parsed[i] = libpsm.New(inputs[i], opts)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	rep := &Report{
		Total:   len(inputs),
		Entries: make([]*Entry, len(inputs)),
	}

	set := libpsm.NewLSMSet()
	defer set.Close()
	nmers := libpsm.NewNmerSet()
	defer nmers.Close()

	for i, X := range parsed {
		entry := newEntry(i+1, X, cfg)
		rep.Entries[i] = entry
		if !X.IsValid() {
			continue
		}
		rep.Valid++
		added, err := set.Add(X)
		if err != nil {
			return nil, err
		}
		if added {
			rep.Unique++
		} else {
			entry.Duplicate = true
		}
		for _, level := range entry.Nmers {
			for _, nmer := range level {
				if _, err = nmers.Add(nmer); err != nil {
					return nil, err
				}
			}
		}
	}
	rep.Nmers = nmers.Len()

	if cfg.DropDupes {
		unique := rep.Entries[:0]
		for _, entry := range rep.Entries {
			if !entry.Duplicate {
				unique = append(unique, entry)
			}
		}
		rep.Entries = unique
	}

	klog.V(2).Infof("checked %d inputs: %d valid, %d unique", rep.Total, rep.Valid, rep.Unique)
	return rep, nil
}

// runCheck reads one notation per line from in and writes the YAML report to out.
func runCheck(ctx context.Context, in io.Reader, out io.Writer, cfg *Config) (*Report, error) {
	inputs, err := libpsm.ReadInputs(in)
	if err != nil {
		return nil, err
	}
	rep, err := CheckInputs(ctx, inputs, cfg)
	if err != nil {
		return nil, err
	}
	if _, err = rep.WriteTo(out); err != nil {
		return nil, err
	}
	return rep, nil
}
