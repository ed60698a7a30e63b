package service

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Moti-Eli/edu-plus/internal/models"
)

// PeriodAllTime selects the unfiltered view in place of a YYYY-MM key.
const PeriodAllTime = "all"

// StatisticsInput is one immutable snapshot of the three attendance sources
// plus the active user roster. Schedules are period-independent.
type StatisticsInput struct {
	InstructorRecords []models.AttendanceRecord
	AdminRecords      []models.AdminAttendanceRecord
	Schedules         []models.ScheduleEntry
	ActiveUsers       []models.UserProfile
	Period            string // YYYY-MM, empty for all time
}

// StatisticsResult carries the reconciled rollups for one snapshot.
type StatisticsResult struct {
	Instructors []models.InstructorSummary `json:"instructors"`
	Schools     []models.SchoolSummary     `json:"schools"`
	Totals      models.StatisticsTotals    `json:"totals"`
	Periods     []string                   `json:"periods"`
	Period      string                     `json:"period"`
}

// AvailablePeriods returns the distinct YYYY-MM keys of the instructor
// records, most recent first. Records with unparseable dates belong to no
// period and are skipped.
func AvailablePeriods(records []models.AttendanceRecord) []string {
	seen := make(map[string]struct{})
	var periods []string
	for _, r := range records {
		key, ok := models.PeriodKey(r.Date)
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		periods = append(periods, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(periods)))
	return periods
}

// EffectivePeriod resolves the caller's selection against the available
// periods: PeriodAllTime yields the unfiltered view, an explicit key is
// honored only when it appears in the list, and anything else falls back to
// the most recent period.
func EffectivePeriod(periods []string, requested string) string {
	if requested == PeriodAllTime {
		return ""
	}
	if requested != "" {
		for _, p := range periods {
			if p == requested {
				return requested
			}
		}
	}
	if len(periods) > 0 {
		return periods[0]
	}
	return ""
}

// ComputeStatistics reconciles instructor-reported and admin-reported hours
// against the roster and the weekly plan. Pure function: no I/O, inputs are
// never mutated, empty inputs yield empty summaries.
func ComputeStatistics(in StatisticsInput) StatisticsResult {
	periods := AvailablePeriods(in.InstructorRecords)

	instructorRecords := filterByPeriod(in.InstructorRecords, in.Period, func(r models.AttendanceRecord) string { return r.Date })
	adminRecords := filterByPeriod(in.AdminRecords, in.Period, func(r models.AdminAttendanceRecord) string { return r.Date })

	return StatisticsResult{
		Instructors: mergeInstructorSummaries(instructorRecords, adminRecords, in.ActiveUsers),
		Schools:     mergeSchoolSummaries(instructorRecords, adminRecords, in.Schedules),
		Totals:      computeTotals(instructorRecords),
		Periods:     periods,
		Period:      in.Period,
	}
}

func filterByPeriod[T any](records []T, period string, dateOf func(T) string) []T {
	if period == "" {
		return records
	}
	var out []T
	for _, r := range records {
		key, ok := models.PeriodKey(dateOf(r))
		if ok && key == period {
			out = append(out, r)
		}
	}
	return out
}

// identityAggregate accumulates hours and report counts for one grouping key,
// preserving first-seen order for deterministic output.
type identityAggregate struct {
	Name    string
	Email   string
	Hours   float64
	Reports int
}

func groupInstructorReports(records []models.AttendanceRecord) []identityAggregate {
	index := make(map[string]int)
	var groups []identityAggregate
	for _, r := range records {
		name := r.InstructorName
		if name == "" {
			name = r.InstructorEmail
		}
		key := normalizeKey(r.InstructorEmail)
		if key == "" {
			key = normalizeKey(name)
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, identityAggregate{Name: name, Email: r.InstructorEmail})
		}
		groups[i].Hours += r.Hours.Float64()
		groups[i].Reports++
	}
	return groups
}

// Admin entries are keyed by name first: the admin types a display name and
// the email column is frequently blank on that side.
func groupAdminReports(records []models.AdminAttendanceRecord) []identityAggregate {
	index := make(map[string]int)
	var groups []identityAggregate
	for _, r := range records {
		name := r.InstructorName
		if name == "" {
			name = r.InstructorEmail
		}
		key := normalizeKey(name)
		if key == "" {
			key = normalizeKey(r.InstructorEmail)
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, identityAggregate{Name: name, Email: r.InstructorEmail})
		}
		groups[i].Hours += r.Hours.Float64()
		groups[i].Reports++
	}
	return groups
}

// instructorMerge holds the evolving summary list with explicit lookup maps,
// email before name. An admin-reported identity matching no known user gets a
// new row keyed by name; two people sharing a display name will merge.
type instructorMerge struct {
	entries []models.InstructorSummary
	byEmail map[string]int
	byName  map[string]int
}

func newInstructorMerge() *instructorMerge {
	return &instructorMerge{
		byEmail: make(map[string]int),
		byName:  make(map[string]int),
	}
}

func (m *instructorMerge) find(email, name string) int {
	if key := normalizeKey(email); key != "" {
		if i, ok := m.byEmail[key]; ok {
			return i
		}
	}
	if key := normalizeKey(name); key != "" {
		if i, ok := m.byName[key]; ok {
			return i
		}
	}
	return -1
}

func (m *instructorMerge) append(entry models.InstructorSummary) {
	i := len(m.entries)
	m.entries = append(m.entries, entry)
	if key := normalizeKey(entry.Email); key != "" {
		if _, taken := m.byEmail[key]; !taken {
			m.byEmail[key] = i
		}
	}
	if key := normalizeKey(entry.Name); key != "" {
		if _, taken := m.byName[key]; !taken {
			m.byName[key] = i
		}
	}
}

func mergeInstructorSummaries(instructorRecords []models.AttendanceRecord, adminRecords []models.AdminAttendanceRecord, users []models.UserProfile) []models.InstructorSummary {
	m := newInstructorMerge()

	// Seed with every active admin/instructor so zero-report users still show.
	for _, u := range users {
		if u.Role != models.RoleInstructor && u.Role != models.RoleAdmin {
			continue
		}
		m.append(models.InstructorSummary{Name: u.DisplayName(), Email: u.Email})
	}

	for _, agg := range groupInstructorReports(instructorRecords) {
		if i := m.find(agg.Email, agg.Name); i >= 0 {
			m.entries[i].InstructorHours = agg.Hours
			m.entries[i].InstructorReports = agg.Reports
		} else {
			m.append(models.InstructorSummary{
				Name:              agg.Name,
				Email:             agg.Email,
				InstructorHours:   agg.Hours,
				InstructorReports: agg.Reports,
			})
		}
	}

	for _, agg := range groupAdminReports(adminRecords) {
		if i := m.find(agg.Email, agg.Name); i >= 0 {
			m.entries[i].AdminHours = agg.Hours
			m.entries[i].AdminReports = agg.Reports
		} else {
			m.append(models.InstructorSummary{
				Name:         agg.Name,
				Email:        agg.Email,
				AdminHours:   agg.Hours,
				AdminReports: agg.Reports,
			})
		}
	}

	for i := range m.entries {
		m.entries[i].Mismatch = m.entries[i].InstructorHours != m.entries[i].AdminHours
	}

	cl := hebrewCollator()
	sort.SliceStable(m.entries, func(i, j int) bool {
		return cl.CompareString(m.entries[i].Name, m.entries[j].Name) < 0
	})
	return m.entries
}

const unknownSchool = "לא ידוע"

type schoolAggregate struct {
	School  string
	City    string
	Hours   float64
	Reports int
}

func groupSchoolReports(school, city string, hours float64, index map[string]int, groups []schoolAggregate) []schoolAggregate {
	if school == "" {
		school = unknownSchool
	}
	if city == "" {
		city = "-"
	}
	i, ok := index[school]
	if !ok {
		i = len(groups)
		index[school] = i
		groups = append(groups, schoolAggregate{School: school, City: city})
	}
	groups[i].Hours += hours
	groups[i].Reports++
	return groups
}

func mergeSchoolSummaries(instructorRecords []models.AttendanceRecord, adminRecords []models.AdminAttendanceRecord, schedules []models.ScheduleEntry) []models.SchoolSummary {
	var entries []models.SchoolSummary
	index := make(map[string]int)

	appendEntry := func(entry models.SchoolSummary) {
		if _, taken := index[entry.School]; taken {
			return
		}
		index[entry.School] = len(entries)
		entries = append(entries, entry)
	}

	// Seed with the schedule's school universe so a school with zero actual
	// reports still appears.
	for _, s := range schedules {
		appendEntry(models.SchoolSummary{School: s.SchoolName, City: s.City})
	}

	instIndex := make(map[string]int)
	var instGroups []schoolAggregate
	for _, r := range instructorRecords {
		instGroups = groupSchoolReports(r.SchoolName, r.City, r.Hours.Float64(), instIndex, instGroups)
	}
	for _, agg := range instGroups {
		if i, ok := index[agg.School]; ok {
			entries[i].InstructorHours = agg.Hours
			entries[i].InstructorReports = agg.Reports
		} else {
			appendEntry(models.SchoolSummary{
				School:            agg.School,
				City:              agg.City,
				InstructorHours:   agg.Hours,
				InstructorReports: agg.Reports,
			})
		}
	}

	adminIndex := make(map[string]int)
	var adminGroups []schoolAggregate
	for _, r := range adminRecords {
		adminGroups = groupSchoolReports(r.SchoolName, r.City, r.Hours.Float64(), adminIndex, adminGroups)
	}
	for _, agg := range adminGroups {
		if i, ok := index[agg.School]; ok {
			entries[i].AdminHours = agg.Hours
			entries[i].AdminReports = agg.Reports
		} else {
			appendEntry(models.SchoolSummary{
				School:       agg.School,
				City:         agg.City,
				AdminHours:   agg.Hours,
				AdminReports: agg.Reports,
			})
		}
	}

	for i := range entries {
		entries[i].Mismatch = entries[i].InstructorHours != entries[i].AdminHours
	}

	cl := hebrewCollator()
	sort.SliceStable(entries, func(i, j int) bool {
		return cl.CompareString(entries[i].School, entries[j].School) < 0
	})
	return entries
}

func computeTotals(records []models.AttendanceRecord) models.StatisticsTotals {
	totals := models.StatisticsTotals{}
	instructors := make(map[string]struct{})
	schools := make(map[string]struct{})
	for _, r := range records {
		totals.TotalHours += r.Hours.Float64()
		identity := normalizeKey(r.InstructorEmail)
		if identity == "" {
			identity = normalizeKey(r.InstructorName)
		}
		if identity != "" {
			instructors[identity] = struct{}{}
		}
		if r.SchoolName != "" {
			schools[r.SchoolName] = struct{}{}
		}
	}
	totals.ActiveInstructors = len(instructors)
	totals.ActiveSchools = len(schools)
	return totals
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func hebrewCollator() *collate.Collator {
	return collate.New(language.Hebrew)
}
