package storage

import (
	"encoding/json"
	"sort"

	"github.com/mkarimov/vulnrep/internal/models"
	"go.etcd.io/bbolt"
)

// SaveReport persists a report generation record to the database
func (s *Store) SaveReport(meta *models.ReportMeta) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		// Marshal report metadata to JSON
		data, err := json.Marshal(meta)
		if err != nil {
			return err
		}

		// Store in reports bucket
		reports := tx.Bucket([]byte(bucketReports))
		if err := reports.Put([]byte(meta.ID), data); err != nil {
			return err
		}

		// Update report index (title -> []report_id mapping)
		index := tx.Bucket([]byte(bucketReportIndex))
		titleKey := []byte(meta.Title)

		// Get existing report IDs for this title
		var reportIDs []string
		if existing := index.Get(titleKey); existing != nil {
			if err := json.Unmarshal(existing, &reportIDs); err != nil {
				return err
			}
		}

		// Append new report ID if not already present
		found := false
		for _, id := range reportIDs {
			if id == meta.ID {
				found = true
				break
			}
		}
		if !found {
			reportIDs = append(reportIDs, meta.ID)
		}

		// Save updated index
		indexData, err := json.Marshal(reportIDs)
		if err != nil {
			return err
		}
		return index.Put(titleKey, indexData)
	})
}

// GetReport retrieves a report generation record by ID
func (s *Store) GetReport(id string) (*models.ReportMeta, error) {
	var meta *models.ReportMeta

	err := s.db.View(func(tx *bbolt.Tx) error {
		reports := tx.Bucket([]byte(bucketReports))
		data := reports.Get([]byte(id))
		if data == nil {
			return nil // Not found
		}

		meta = &models.ReportMeta{}
		return json.Unmarshal(data, meta)
	})

	return meta, err
}

// ListReports retrieves all report records for a title, sorted by GeneratedAt descending
func (s *Store) ListReports(title string) ([]*models.ReportMeta, error) {
	var reports []*models.ReportMeta

	err := s.db.View(func(tx *bbolt.Tx) error {
		// Get report IDs from index
		index := tx.Bucket([]byte(bucketReportIndex))
		data := index.Get([]byte(title))
		if data == nil {
			return nil // No reports for this title
		}

		var reportIDs []string
		if err := json.Unmarshal(data, &reportIDs); err != nil {
			return err
		}

		// Retrieve each report
		reportsBucket := tx.Bucket([]byte(bucketReports))
		for _, id := range reportIDs {
			reportData := reportsBucket.Get([]byte(id))
			if reportData != nil {
				var meta models.ReportMeta
				if err := json.Unmarshal(reportData, &meta); err != nil {
					return err
				}
				reports = append(reports, &meta)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	sortNewestFirst(reports)
	return reports, nil
}

// ListAllReports retrieves every report record, sorted by GeneratedAt descending
func (s *Store) ListAllReports() ([]*models.ReportMeta, error) {
	var reports []*models.ReportMeta

	err := s.db.View(func(tx *bbolt.Tx) error {
		reportsBucket := tx.Bucket([]byte(bucketReports))
		return reportsBucket.ForEach(func(_, v []byte) error {
			var meta models.ReportMeta
			if err := json.Unmarshal(v, &meta); err != nil {
				return err
			}
			reports = append(reports, &meta)
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	sortNewestFirst(reports)
	return reports, nil
}

func sortNewestFirst(reports []*models.ReportMeta) {
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].GeneratedAt.After(reports[j].GeneratedAt)
	})
}
