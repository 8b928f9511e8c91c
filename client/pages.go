package client

import (
	"context"
	"errors"
	"io"
	"strconv"
	"time"
)

// ErrSaveInFlight means a save was requested while one is already
// running; the submit action is disabled, not queued.
var ErrSaveInFlight = errors.New("save already in flight")

// handleUnauthorized applies the session-expiry policy: clear the
// stored session and send the user to login. Reports whether the
// error was an auth failure.
func handleUnauthorized(app *App, err error) bool {
	if !IsUnauthorized(err) {
		return false
	}
	_ = app.Session.ClearSession()
	app.Nav.Navigate("/login")
	return true
}

// MapMealType folds the four picker choices onto the stored enum;
// snack counts as dinner everywhere.
func MapMealType(t string) string {
	if t == "snack" {
		return "dinner"
	}
	return t
}

// ---------- login / register ----------

type LoginController struct {
	App *App
}

// Login runs the guest-style flow: issue a token, persist the
// session, go home.
func (c *LoginController) Login(ctx context.Context) error {
	if !c.App.Guard().Public() {
		return nil
	}

	grant, err := c.App.Gateway.IssueToken(ctx)
	if err != nil {
		return err
	}
	if err := c.App.Session.SetSession(grant.AccessToken, strconv.FormatInt(grant.UserID, 10)); err != nil {
		return err
	}
	c.App.Nav.Navigate("/")
	return nil
}

type RegisterController struct {
	App *App
}

func (c *RegisterController) Register(ctx context.Context, in RegisterInput) error {
	if !c.App.Guard().Public() {
		return nil
	}

	grant, err := c.App.Gateway.Register(ctx, in)
	if err != nil {
		return err
	}
	if err := c.App.Session.SetSession(grant.AccessToken, strconv.FormatInt(grant.UserID, 10)); err != nil {
		return err
	}
	c.App.Nav.Navigate("/")
	return nil
}

// ---------- main dashboard ----------

type MainView struct {
	Stats          Stats
	Percent        int // unclamped percent of goal
	DisplayPercent int // clamped for the progress bar
	Message        string
}

type MainController struct {
	App *App
}

// Load fetches today's stats. A 401 triggers exactly one guest-token
// reissue and retry; if the retry fails too the session is cleared
// and the user lands on the login view with nothing rendered.
func (c *MainController) Load(ctx context.Context) (*MainView, error) {
	if !c.App.Guard().Private() {
		return nil, nil
	}

	stats, err := c.App.Gateway.FetchStats(ctx)
	if IsUnauthorized(err) {
		stats, err = c.reissueAndRetry(ctx)
	}
	if err != nil {
		return nil, err
	}

	percent := 0
	if stats.HasMeals {
		percent = PercentOfGoal(stats.TotalCalories, stats.DailyCalorieGoal)
	}
	return &MainView{
		Stats:          *stats,
		Percent:        percent,
		DisplayPercent: DisplayPercent(percent),
		Message:        HealthMessage(percent),
	}, nil
}

func (c *MainController) reissueAndRetry(ctx context.Context) (*Stats, error) {
	grant, err := c.App.Gateway.IssueToken(ctx)
	if err != nil {
		c.failAuth()
		return nil, err
	}
	if err := c.App.Session.SetSession(grant.AccessToken, strconv.FormatInt(grant.UserID, 10)); err != nil {
		return nil, err
	}

	stats, err := c.App.Gateway.FetchStats(ctx)
	if err != nil {
		c.failAuth()
		return nil, err
	}
	return stats, nil
}

func (c *MainController) failAuth() {
	_ = c.App.Session.ClearSession()
	c.App.Nav.Navigate("/login")
}

// ---------- meal log ----------

type MealLogView struct {
	Date          time.Time
	Meals         DayMeals
	TotalCalories float64
	Nutrients     Nutrients
	PerMealType   map[string]float64
}

type MealLogController struct {
	App *App

	lastGen uint64
	loaded  bool
	view    *MealLogView
}

// Load always re-fetches the given date and derives the display
// aggregates.
func (c *MealLogController) Load(ctx context.Context, date time.Time) (*MealLogView, error) {
	if !c.App.Guard().Private() {
		return nil, nil
	}

	meals, err := c.App.Gateway.ListMeals(ctx, date)
	if err != nil {
		handleUnauthorized(c.App, err)
		return nil, err
	}

	total, nutrients := DayTotals(meals)
	view := &MealLogView{
		Date:          date,
		Meals:         meals,
		TotalCalories: total,
		Nutrients:     nutrients,
		PerMealType:   PerMealTypeCalories(meals),
	}
	c.view = view
	c.loaded = true
	c.lastGen = c.App.Bus.Generation()
	return view, nil
}

// ReloadIfStale re-fetches only when the refresh signal moved since
// the last load. However many times the signal fired in between, this
// performs at most one fetch.
func (c *MealLogController) ReloadIfStale(ctx context.Context, date time.Time) (*MealLogView, error) {
	if gen, changed := c.App.Bus.Changed(c.lastGen); !c.loaded || changed {
		c.lastGen = gen
		return c.Load(ctx, date)
	}
	return c.view, nil
}

// ---------- calendar ----------

type CalendarView struct {
	Days   map[string]DaySummary
	Streak StreakStats
}

type CalendarController struct {
	App *App
}

func (c *CalendarController) Load(ctx context.Context, year, month int) (*CalendarView, error) {
	if !c.App.Guard().Private() {
		return nil, nil
	}

	userID := c.App.Session.UserID()
	days, err := c.App.Gateway.FetchMonthly(ctx, userID, year, month)
	if err != nil {
		handleUnauthorized(c.App, err)
		return nil, err
	}
	streak, err := c.App.Gateway.FetchStreak(ctx, userID)
	if err != nil {
		handleUnauthorized(c.App, err)
		return nil, err
	}
	return &CalendarView{Days: days, Streak: *streak}, nil
}

// ---------- manual entry ----------

// FoodRow is one row of the manual entry form. Rows without a name or
// calories are skipped rather than rejected.
type FoodRow struct {
	Name          string
	ServingSize   string
	Calories      float64
	Carbohydrates float64
	Protein       float64
	Fat           float64
}

type ManualMealController struct {
	App    *App
	saving bool
}

// Save creates one meal entry per filled row and returns to the log.
// The refresh signal fires per persisted row, so sibling views learn
// about partial progress even when a later row fails. The submit
// stays disabled while a save is in flight to prevent duplicate
// submission.
func (c *ManualMealController) Save(ctx context.Context, mealType string, at time.Time, rows []FoodRow) error {
	if !c.App.Guard().Private() {
		return nil
	}
	if c.saving {
		return ErrSaveInFlight
	}
	c.saving = true
	defer func() { c.saving = false }()

	mealType = MapMealType(mealType)
	for _, row := range rows {
		if row.Name == "" || row.Calories == 0 {
			continue
		}
		serving := row.ServingSize
		if serving == "" {
			serving = "1 serving"
		}
		_, err := c.App.Gateway.CreateMeal(ctx, NewMeal{
			MealType:      mealType,
			Timestamp:     at,
			FoodName:      row.Name,
			ServingSize:   serving,
			Calories:      row.Calories,
			Carbohydrates: row.Carbohydrates,
			Protein:       row.Protein,
			Fat:           row.Fat,
		})
		if err != nil {
			handleUnauthorized(c.App, err)
			return err
		}
		c.App.Bus.TriggerRefresh()
	}

	c.App.Nav.Navigate("/meal-log")
	return nil
}

// ---------- edit ----------

type EditMealController struct {
	App    *App
	saving bool
}

func (c *EditMealController) Load(ctx context.Context, mealID uint) (*MealDetail, error) {
	if !c.App.Guard().Private() {
		return nil, nil
	}
	return c.App.Gateway.GetMeal(ctx, mealID)
}

func (c *EditMealController) Save(ctx context.Context, mealID uint, update MealUpdate) error {
	if !c.App.Guard().Private() {
		return nil
	}
	if c.saving {
		return ErrSaveInFlight
	}
	c.saving = true
	defer func() { c.saving = false }()

	update.MealType = MapMealType(update.MealType)
	if err := c.App.Gateway.UpdateMeal(ctx, mealID, update); err != nil {
		handleUnauthorized(c.App, err)
		return err
	}

	c.App.Bus.TriggerRefresh()
	c.App.Nav.Navigate("/meal-log")
	return nil
}

// ---------- profile ----------

type ProfileController struct {
	App    *App
	saving bool
}

func (c *ProfileController) Load(ctx context.Context) (*Profile, error) {
	if !c.App.Guard().Private() {
		return nil, nil
	}
	return c.App.Gateway.FetchProfile(ctx)
}

func (c *ProfileController) Save(ctx context.Context, update ProfileUpdate) error {
	if !c.App.Guard().Private() {
		return nil
	}
	if c.saving {
		return ErrSaveInFlight
	}
	c.saving = true
	defer func() { c.saving = false }()

	if err := c.App.Gateway.UpdateProfile(ctx, update); err != nil {
		return err
	}
	// a changed calorie goal shifts every goal-relative view
	c.App.Bus.TriggerRefresh()
	return nil
}

// Logout clears the session and sends the user to login.
func (c *ProfileController) Logout() {
	_ = c.App.Session.ClearSession()
	c.App.Nav.Navigate("/login")
}

// ---------- recognition result ----------

type OcrResultController struct {
	App *App
}

// Analyze submits the captured image and carries the result to the
// result view; on failure the user returns to where they came from.
func (c *OcrResultController) Analyze(ctx context.Context, filename string, image io.Reader) (*AnalyzeResult, error) {
	result, err := c.App.Gateway.AnalyzeImage(ctx, filename, image)
	if err != nil {
		c.App.Nav.Back()
		return nil, err
	}
	if result.Error != "" {
		c.App.Nav.Back()
		return result, nil
	}
	c.App.Nav.Navigate("/result")
	return result, nil
}
