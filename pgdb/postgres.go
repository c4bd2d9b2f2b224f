// Package pgdb implements db.Store on PostgreSQL, the relational layout a hosted
// Supabase project uses for the same tables.
package pgdb

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"oasis/db"
	"oasis/models"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dialectPostgres = "postgres"

//go:embed schema.sql
var schemaSQL string

var (
	cabinCols        = []any{"id", "name", "maxCapacity", "regularPrice", "discount", "image"}
	guestCols        = []any{"id", "created_at", "fullName", "email", "nationalID", "nationality", "countryFlag"}
	bookingCols      = []any{"id", "created_at", "startDate", "endDate", "numNights", "numGuests", "cabinPrice", "extrasPrice", "totalPrice", "status", "hasBreakfast", "isPaid", "observations", "cabinId", "guestId"}
	settingsCols     = []any{"minBookingLength", "maxBookingLength", "maxGuestsPerBooking", "breakfastPrice"}
	errBuildingQuery = errors.New("building query failed")
)

// sqlBuilder is satisfied by every goqu dataset.
type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

// Store is a db.Store backed by a pgx connection pool.
type Store struct {
	pool    *pgxpool.Pool
	builder goqu.DialectWrapper
}

var _ db.Store = (*Store)(nil)

// PoolConfig parses dsn and applies the pool limits the service runs with.
func PoolConfig(dsn string) (*pgxpool.Config, error) {
	const defaultMaxConnections = int32(8)
	const defaultMinConnections = int32(1)
	const defaultMaxConnLifetime = time.Hour
	const defaultMaxConnIdleTime = time.Minute * 5
	const defaultHealthCheckPeriod = time.Minute
	const defaultConnectTimeout = time.Second * 5

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = defaultMaxConnections
	cfg.MinConns = defaultMinConnections
	cfg.MaxConnLifetime = defaultMaxConnLifetime
	cfg.MaxConnIdleTime = defaultMaxConnIdleTime
	cfg.HealthCheckPeriod = defaultHealthCheckPeriod
	cfg.ConnConfig.ConnectTimeout = defaultConnectTimeout
	return cfg, nil
}

// Connect opens a pool for dsn and makes sure the schema exists.
func Connect(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := PoolConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to Postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping Postgres: %w", err)
	}

	s := New(pool)
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return s, nil
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, builder: goqu.Dialect(dialectPostgres)}
}

func (s *Store) Close(context.Context) error {
	s.pool.Close()
	return nil
}

func toSQL(ds sqlBuilder) (string, []any, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return "", nil, errors.Join(errBuildingQuery, err)
	}
	return query, args, nil
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}
	return err
}

func (s *Store) exec(ctx context.Context, ds sqlBuilder) (int64, error) {
	query, args, err := toSQL(ds)
	if err != nil {
		return 0, err
	}
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanBooking(row pgx.Row) (models.Booking, error) {
	var b models.Booking
	var status string
	err := row.Scan(&b.ID, &b.CreatedAt, &b.StartDate, &b.EndDate, &b.NumNights, &b.NumGuests,
		&b.CabinPrice, &b.ExtrasPrice, &b.TotalPrice, &status, &b.HasBreakfast, &b.IsPaid,
		&b.Observations, &b.CabinID, &b.GuestID)
	b.Status = models.BookingStatus(status)
	return b, err
}

func (s *Store) Cabins(ctx context.Context) ([]models.Cabin, error) {
	query, args, err := toSQL(s.builder.From(db.CabinsTable).Prepared(true).
		Select(cabinCols...).
		Order(goqu.I("name").Asc()))
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cabins := []models.Cabin{}
	for rows.Next() {
		var c models.Cabin
		if err := rows.Scan(&c.ID, &c.Name, &c.MaxCapacity, &c.RegularPrice, &c.Discount, &c.Image); err != nil {
			return nil, err
		}
		cabins = append(cabins, c)
	}
	return cabins, rows.Err()
}

func (s *Store) Cabin(ctx context.Context, id string) (models.Cabin, error) {
	query, args, err := toSQL(s.builder.From(db.CabinsTable).Prepared(true).
		Select(append(cabinCols, "description")...).
		Where(goqu.C("id").Eq(id)).
		Limit(1))
	if err != nil {
		return models.Cabin{}, err
	}
	var c models.Cabin
	err = s.pool.QueryRow(ctx, query, args...).
		Scan(&c.ID, &c.Name, &c.MaxCapacity, &c.RegularPrice, &c.Discount, &c.Image, &c.Description)
	return c, notFound(err)
}

func (s *Store) Settings(ctx context.Context) (models.Settings, error) {
	query, args, err := toSQL(s.builder.From(db.SettingsTable).Prepared(true).
		Select(settingsCols...).
		Order(goqu.I("id").Asc()).
		Limit(1))
	if err != nil {
		return models.Settings{}, err
	}
	var st models.Settings
	err = s.pool.QueryRow(ctx, query, args...).
		Scan(&st.MinBookingLength, &st.MaxBookingLength, &st.MaxGuestsPerBooking, &st.BreakfastPrice)
	return st, notFound(err)
}

func (s *Store) GuestByEmail(ctx context.Context, email string) (models.Guest, error) {
	query, args, err := toSQL(s.builder.From(db.GuestsTable).Prepared(true).
		Select(guestCols...).
		Where(goqu.C("email").Eq(email)).
		Limit(1))
	if err != nil {
		return models.Guest{}, err
	}
	var g models.Guest
	err = s.pool.QueryRow(ctx, query, args...).
		Scan(&g.ID, &g.CreatedAt, &g.FullName, &g.Email, &g.NationalID, &g.Nationality, &g.CountryFlag)
	return g, notFound(err)
}

func (s *Store) CreateGuest(ctx context.Context, g models.Guest) error {
	_, err := s.exec(ctx, s.builder.Insert(db.GuestsTable).Prepared(true).Rows(goqu.Record{
		"id":         g.ID,
		"created_at": g.CreatedAt,
		"fullName":   g.FullName,
		"email":      g.Email,
	}))
	return err
}

func (s *Store) UpdateGuest(ctx context.Context, guestID string, u models.GuestProfileUpdate) error {
	n, err := s.exec(ctx, s.builder.Update(db.GuestsTable).Prepared(true).
		Set(goqu.Record{
			"nationality": u.Nationality,
			"countryFlag": u.CountryFlag,
			"nationalID":  u.NationalID,
		}).
		Where(goqu.C("id").Eq(guestID)))
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *Store) activeBookingsQuery(cabinID string, since time.Time) *goqu.SelectDataset {
	return s.builder.From(db.BookingsTable).Prepared(true).
		Select(bookingCols...).
		Where(
			goqu.C("cabinId").Eq(cabinID),
			goqu.Or(
				goqu.C("startDate").Gte(since),
				goqu.C("status").Eq(string(models.StatusCheckedIn)),
			),
		)
}

// ownedBooking matches a booking row only for its own guest.
func ownedBooking(bookingID, guestID string) goqu.Ex {
	return goqu.Ex{"id": bookingID, "guestId": guestID}
}

func (s *Store) ActiveBookings(ctx context.Context, cabinID string, since time.Time) ([]models.Booking, error) {
	query, args, err := toSQL(s.activeBookingsQuery(cabinID, since))
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (s *Store) Booking(ctx context.Context, id string) (models.Booking, error) {
	query, args, err := toSQL(s.builder.From(db.BookingsTable).Prepared(true).
		Select(bookingCols...).
		Where(goqu.C("id").Eq(id)).
		Limit(1))
	if err != nil {
		return models.Booking{}, err
	}
	b, err := scanBooking(s.pool.QueryRow(ctx, query, args...))
	return b, notFound(err)
}

// GuestBookings joins cabins once instead of looking each cabin up separately.
func (s *Store) GuestBookings(ctx context.Context, guestID string) ([]models.GuestBooking, error) {
	query, args, err := toSQL(s.builder.From(goqu.T(db.BookingsTable).As("b")).Prepared(true).
		LeftJoin(goqu.T(db.CabinsTable).As("c"), goqu.On(goqu.I("b.cabinId").Eq(goqu.I("c.id")))).
		Select(
			goqu.I("b.id"), goqu.I("b.created_at"), goqu.I("b.startDate"), goqu.I("b.endDate"),
			goqu.I("b.numNights"), goqu.I("b.numGuests"), goqu.I("b.totalPrice"),
			goqu.I("b.guestId"), goqu.I("b.cabinId"),
			goqu.COALESCE(goqu.I("c.name"), "").As("cabinName"),
			goqu.COALESCE(goqu.I("c.image"), "").As("cabinImage"),
		).
		Where(goqu.I("b.guestId").Eq(guestID)).
		Order(goqu.I("b.startDate").Asc()))
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.GuestBooking{}
	for rows.Next() {
		var gb models.GuestBooking
		if err := rows.Scan(&gb.ID, &gb.CreatedAt, &gb.StartDate, &gb.EndDate, &gb.NumNights,
			&gb.NumGuests, &gb.TotalPrice, &gb.GuestID, &gb.CabinID, &gb.Cabin.Name, &gb.Cabin.Image); err != nil {
			return nil, err
		}
		list = append(list, gb)
	}
	return list, rows.Err()
}

func (s *Store) CreateBooking(ctx context.Context, b models.Booking) (models.Booking, error) {
	query, args, err := toSQL(s.builder.Insert(db.BookingsTable).Prepared(true).
		Rows(goqu.Record{
			"id":           b.ID,
			"created_at":   b.CreatedAt,
			"startDate":    b.StartDate,
			"endDate":      b.EndDate,
			"numNights":    b.NumNights,
			"numGuests":    b.NumGuests,
			"cabinPrice":   b.CabinPrice,
			"extrasPrice":  b.ExtrasPrice,
			"totalPrice":   b.TotalPrice,
			"status":       string(b.Status),
			"hasBreakfast": b.HasBreakfast,
			"isPaid":       b.IsPaid,
			"observations": b.Observations,
			"cabinId":      b.CabinID,
			"guestId":      b.GuestID,
		}).
		Returning(bookingCols...))
	if err != nil {
		return models.Booking{}, err
	}
	return scanBooking(s.pool.QueryRow(ctx, query, args...))
}

func (s *Store) UpdateGuestBooking(ctx context.Context, bookingID, guestID string, u models.BookingUpdate) (bool, error) {
	n, err := s.exec(ctx, s.builder.Update(db.BookingsTable).Prepared(true).
		Set(goqu.Record{"numGuests": u.NumGuests, "observations": u.Observations}).
		Where(ownedBooking(bookingID, guestID)))
	return n > 0, err
}

func (s *Store) DeleteGuestBooking(ctx context.Context, bookingID, guestID string) (bool, error) {
	n, err := s.exec(ctx, s.builder.Delete(db.BookingsTable).Prepared(true).
		Where(ownedBooking(bookingID, guestID)))
	return n > 0, err
}

func (s *Store) CreateContactMessage(ctx context.Context, m models.ContactMessage) error {
	_, err := s.exec(ctx, s.builder.Insert(db.ContactTable).Prepared(true).Rows(goqu.Record{
		"id":         m.ID,
		"created_at": m.CreatedAt,
		"fullName":   m.FullName,
		"email":      m.Email,
		"subject":    m.Subject,
		"message":    m.Message,
	}))
	return err
}
