package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"petasare/internal/domain"
)

// valStr stores empty optional strings as NULL.
func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
func valTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	facilities := h.Facilities
	if facilities == nil {
		facilities = []string{}
	}
	fac, err := json.Marshal(facilities)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, upsertHotelSQL,
		h.ID,
		h.Name,
		int(h.Category),
		h.Price,
		h.Rating,
		string(fac),
		h.Address,
		h.Coords.Lat,
		h.Coords.Lng,
		valStr(h.Contact),
		valStr(h.Image),
		valStr(h.Links.Traveloka),
		valStr(h.Links.Agoda),
		valStr(h.Links.Map),
	)
	return err
}

// UpsertReviews replaces the hotel's reviews in one transaction.
func (r *Repo) UpsertReviews(ctx context.Context, hotelID int64, rs []domain.Review) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deleteReviewsSQL, hotelID); err != nil {
		return err
	}
	if len(rs) > 0 {
		values := make([]string, 0, len(rs))
		args := make([]any, 0, len(rs)*6) // 6 params per row
		for i, rv := range rs {
			values = append(values, "(?,?,?,?,?,?)")
			args = append(args, hotelID, i, rv.User, rv.Comment, rv.Rating, valTime(rv.Date))
		}
		if _, err := tx.ExecContext(ctx, insertReviewsPrefix+strings.Join(values, ","), args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListHotels returns every hotel in id order with its reviews attached.
func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	idx := map[int64]int{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		idx[h.ID] = len(out)
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rrows, err := r.db.QueryContext(ctx, listAllReviewsSQL)
	if err != nil {
		return nil, err
	}
	defer rrows.Close()
	for rrows.Next() {
		rv, err := scanReview(rrows)
		if err != nil {
			return nil, err
		}
		if i, ok := idx[rv.HotelID]; ok {
			out[i].Reviews = append(out[i].Reviews, rv)
		}
	}
	return out, rrows.Err()
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx, getHotelSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Hotel{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Hotel{}, err
	}

	rows, err := r.db.QueryContext(ctx, listReviewsByHotelSQL, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	defer rows.Close()
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return domain.Hotel{}, err
		}
		h.Reviews = append(h.Reviews, rv)
	}
	return h, rows.Err()
}

func (r *Repo) ListReviews(ctx context.Context, id int64, pg domain.PageQuery) (domain.ReviewsPage, error) {
	var exists int64
	if err := r.db.QueryRowContext(ctx, `SELECT id FROM hotels WHERE id = ?`, id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ReviewsPage{}, domain.ErrNotFound
		}
		return domain.ReviewsPage{}, err
	}

	limit := pg.Limit
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, listReviewsPageSQL, id, limit)
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	defer rows.Close()

	page := domain.ReviewsPage{Items: []domain.Review{}}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return domain.ReviewsPage{}, err
		}
		page.Items = append(page.Items, rv)
	}
	return page, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHotel(s scanner) (domain.Hotel, error) {
	var h domain.Hotel
	var category int
	var facilitiesJSON []byte
	var contact, image, traveloka, agoda, mapLink sql.NullString

	if err := s.Scan(
		&h.ID, &h.Name, &category, &h.Price, &h.Rating, &facilitiesJSON, &h.Address,
		&h.Coords.Lat, &h.Coords.Lng,
		&contact, &image, &traveloka, &agoda, &mapLink,
	); err != nil {
		return domain.Hotel{}, err
	}
	if category < int(domain.Star1) || category > int(domain.Star5) {
		return domain.Hotel{}, fmt.Errorf("hotel %d: bad category %d", h.ID, category)
	}
	h.Category = domain.Category(category)
	if err := json.Unmarshal(facilitiesJSON, &h.Facilities); err != nil {
		return domain.Hotel{}, fmt.Errorf("hotel %d: facilities: %w", h.ID, err)
	}
	h.Contact = contact.String
	h.Image = image.String
	h.Links = domain.BookingLinks{Traveloka: traveloka.String, Agoda: agoda.String, Map: mapLink.String}
	return h, nil
}

func scanReview(s scanner) (domain.Review, error) {
	var rv domain.Review
	var at sql.NullTime
	if err := s.Scan(&rv.HotelID, &rv.User, &rv.Comment, &rv.Rating, &at); err != nil {
		return domain.Review{}, err
	}
	if at.Valid {
		rv.Date = at.Time.UTC()
	}
	return rv, nil
}
