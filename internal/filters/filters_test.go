package filters

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/farellandr/airport/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		DryRun: true,
	})
	require.NoError(t, err)
	return db
}

func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func flightIDs(flights []models.Flight) []uint {
	ids := make([]uint, 0, len(flights))
	for _, f := range flights {
		ids = append(ids, f.ID)
	}
	return ids
}

func TestFlightFilter_Empty(t *testing.T) {
	db := dryRunDB(t)

	var flights []models.Flight
	stmt := db.Scopes(FlightFilter{}.Scope()).Find(&flights).Statement

	assert.NotContains(t, stmt.SQL.String(), "WHERE")
	assert.Empty(t, stmt.Vars)
}

func TestFlightFilter_AllDimensions(t *testing.T) {
	db := dryRunDB(t)

	var flights []models.Flight
	stmt := db.Scopes(FlightFilter{
		RouteIDs:    []uint{1, 2},
		AirplaneIDs: []uint{7},
		CrewIDs:     []uint{3, 4},
	}.Scope()).Find(&flights).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "flights.route_id IN ($1,$2)")
	assert.Contains(t, sql, "flights.airplane_id IN ($3)")
	assert.Contains(t, sql, `flights.id IN (SELECT flight_id FROM "flight_crews" WHERE crew_id IN ($4,$5))`)
	assert.Equal(t, []interface{}{uint(1), uint(2), uint(7), uint(3), uint(4)}, stmt.Vars)
}

func TestFlightFilter_RoutesResultSet(t *testing.T) {
	db, mock := mockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "flights" WHERE flights\.route_id IN \(\$1,\$2\)`).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "route_id", "airplane_id"}).
			AddRow(10, 1, 7).
			AddRow(11, 2, 7))

	var flights []models.Flight
	err := db.Scopes(FlightFilter{RouteIDs: []uint{1, 2}}.Scope()).Find(&flights).Error

	require.NoError(t, err)
	assert.Equal(t, []uint{10, 11}, flightIDs(flights))
	for _, f := range flights {
		assert.Contains(t, []uint{1, 2}, f.RouteID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The crew condition is a subquery rather than a join, so a flight staffed by
// several of the requested crew members comes back once.
func TestFlightFilter_CrewResultSetHasNoDuplicates(t *testing.T) {
	db, mock := mockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "flights" WHERE flights\.id IN \(SELECT flight_id FROM "flight_crews" WHERE crew_id IN \(\$1,\$2\)\)$`).
		WithArgs(3, 4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "route_id", "airplane_id"}).
			AddRow(10, 1, 7))

	var flights []models.Flight
	err := db.Scopes(FlightFilter{CrewIDs: []uint{3, 4}}.Scope()).Find(&flights).Error

	require.NoError(t, err)
	assert.Equal(t, []uint{10}, flightIDs(flights))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAirplaneFilter(t *testing.T) {
	db := dryRunDB(t)

	var airplanes []models.Airplane
	stmt := db.Scopes(AirplaneFilter{TypeIDs: []uint{5}}.Scope()).Find(&airplanes).Statement

	assert.Contains(t, stmt.SQL.String(), "airplanes.airplane_type_id IN ($1)")
	assert.Equal(t, []interface{}{uint(5)}, stmt.Vars)
}

func TestAirportFilter(t *testing.T) {
	t.Run("name substring", func(t *testing.T) {
		db := dryRunDB(t)

		var airports []models.Airport
		stmt := db.Scopes(AirportFilter{ClosestBigCity: "kyiv"}.Scope()).Find(&airports).Statement

		assert.Contains(t, stmt.SQL.String(), `airports.closest_big_city_id IN (SELECT id FROM "cities" WHERE name ILIKE $1)`)
		assert.Equal(t, []interface{}{"%kyiv%"}, stmt.Vars)
	})

	t.Run("numeric matches id or name", func(t *testing.T) {
		db := dryRunDB(t)

		var airports []models.Airport
		stmt := db.Scopes(AirportFilter{ClosestBigCity: "12"}.Scope()).Find(&airports).Statement

		assert.Contains(t, stmt.SQL.String(), "airports.closest_big_city_id = $1 OR airports.closest_big_city_id IN")
		assert.Equal(t, []interface{}{uint64(12), "%12%"}, stmt.Vars)
	})

	t.Run("blank is unfiltered", func(t *testing.T) {
		db := dryRunDB(t)

		var airports []models.Airport
		stmt := db.Scopes(AirportFilter{ClosestBigCity: "  "}.Scope()).Find(&airports).Statement

		assert.NotContains(t, stmt.SQL.String(), "WHERE")
	})
}

func TestRouteFilter(t *testing.T) {
	db := dryRunDB(t)

	var routes []models.Route
	stmt := db.Scopes(RouteFilter{Source: "Lviv", Destination: "50%"}.Scope()).Find(&routes).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "routes.source_id IN (SELECT airports.id FROM \"airports\" JOIN cities ON cities.id = airports.closest_big_city_id WHERE cities.name ILIKE $1)")
	assert.Contains(t, sql, "routes.destination_id IN (SELECT airports.id")
	assert.Equal(t, []interface{}{"%Lviv%", `%50\%%`}, stmt.Vars)
}
