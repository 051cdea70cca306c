// Package recordcsv provides a one-shot CSV loader for the record store.
package recordcsv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jcpaschoal/platform-analytics/business/domain/recordbus"
	"github.com/jcpaschoal/platform-analytics/foundation/logger"
)

// The four files expected inside the data directory.
const (
	usersFile     = "users.csv"
	tenanciesFile = "tenancies.csv"
	licencesFile  = "licences.csv"
	seriesFile    = "timeseries.csv"
)

// Store loads the datasets from a directory of CSV exports.
type Store struct {
	log *logger.Logger
	dir string
}

// NewStore constructs the api for csv data access.
func NewStore(log *logger.Logger, dir string) *Store {
	return &Store{
		log: log,
		dir: dir,
	}
}

// Load implements the recordbus.Storer interface. Rows that fail to parse
// are skipped and counted; an empty file yields an empty dataset, while a
// missing file aborts the load.
func (s *Store) Load(ctx context.Context) (recordbus.Records, error) {
	var records recordbus.Records

	if err := s.loadFile(ctx, usersFile, func(row map[string]string) error {
		usr, err := toBusUserRecord(row)
		if err != nil {
			records.Skipped.Users++
			return err
		}
		records.Users = append(records.Users, usr)
		return nil
	}); err != nil {
		return recordbus.Records{}, fmt.Errorf("users: %w", err)
	}

	if err := s.loadFile(ctx, tenanciesFile, func(row map[string]string) error {
		tnc, err := toBusTenancyMetric(row)
		if err != nil {
			records.Skipped.Tenancies++
			return err
		}
		records.Tenancies = append(records.Tenancies, tnc)
		return nil
	}); err != nil {
		return recordbus.Records{}, fmt.Errorf("tenancies: %w", err)
	}

	if err := s.loadFile(ctx, licencesFile, func(row map[string]string) error {
		lic, err := toBusLicenceRecord(row)
		if err != nil {
			records.Skipped.Licences++
			return err
		}
		records.Licences = append(records.Licences, lic)
		return nil
	}); err != nil {
		return recordbus.Records{}, fmt.Errorf("licences: %w", err)
	}

	if err := s.loadFile(ctx, seriesFile, func(row map[string]string) error {
		pt, err := toBusSeriesPoint(row)
		if err != nil {
			records.Skipped.Series++
			return err
		}
		records.Series = append(records.Series, pt)
		return nil
	}); err != nil {
		return recordbus.Records{}, fmt.Errorf("timeseries: %w", err)
	}

	return records, nil
}

// loadFile streams one CSV file, mapping each row by header name and handing
// it to the row function. A row function error marks a skipped row; only
// file-level problems abort the load.
func (s *Store) loadFile(ctx context.Context, name string, rowFn func(row map[string]string) error) error {
	path := filepath.Join(s.dir, name)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("read header %s: %w", path, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[h] = i
	}

	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		row := make(map[string]string, len(cols))
		for name, idx := range cols {
			if idx < len(rec) {
				row[name] = rec[idx]
			}
		}

		if err := rowFn(row); err != nil {
			s.log.Warn(ctx, "recordcsv: skipping row", "file", name, "line", line, "err", err)
		}
	}

	return nil
}
