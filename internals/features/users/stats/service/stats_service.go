// file: internals/features/users/stats/service/stats_service.go
package service

import (
	"errors"
	"log"
	"math"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	userModel "classku_backend/internals/features/users/user/model"
	helpers "classku_backend/internals/helpers"
)

/* ========================================================
   Pure computation
   The stats snapshot is a cache: everything here must be
   recomputable from submissions at any time, and running it
   twice with no new data must give the same result.
======================================================== */

// GradedRow is one submission joined with its assignment's max points.
type GradedRow struct {
	Status      string   // submitted | graded
	Score       *float64 // set once graded
	TotalPoints float64  // assignment max, > 0
}

type StudentStats struct {
	CompletedAssignments int      `json:"completed_assignments"`
	AverageScore         int      `json:"average_score"` // mean percentage, rounded
	TotalPoints          float64  `json:"total_points"`  // sum of raw scores
	Rank                 int      `json:"rank"`
	StreakDays           int      `json:"streak_days"`
	Badges               []string `json:"badges"`
}

// ComputeStats derives the snapshot from submission rows.
// completed counts both submitted and graded work; the average only
// considers graded submissions with a usable max score.
func ComputeStats(rows []GradedRow) StudentStats {
	var st StudentStats

	var pctSum float64
	var gradedCount int
	for _, r := range rows {
		switch r.Status {
		case "submitted", "graded":
			st.CompletedAssignments++
		default:
			continue
		}
		if r.Status == "graded" && r.Score != nil {
			st.TotalPoints += *r.Score
			if r.TotalPoints > 0 {
				pctSum += *r.Score / r.TotalPoints * 100
				gradedCount++
			}
		}
	}
	if gradedCount > 0 {
		st.AverageScore = int(math.Round(pctSum / float64(gradedCount)))
	}
	return st
}

// Badge thresholds. The set is fully re-derived on every recompute;
// earlier badges are overwritten, not merged.
func ComputeBadges(averageScore, completedAssignments, streakDays int) []string {
	badges := make([]string, 0, 4)
	if averageScore >= 90 {
		badges = append(badges, "achiever")
	} else if averageScore >= 75 {
		badges = append(badges, "consistent")
	}
	if completedAssignments >= 10 {
		badges = append(badges, "dedicated")
	}
	if streakDays >= 7 {
		badges = append(badges, "streak-week")
	}
	return badges
}

// RankEntry is a student's standing used for rank resolution.
type RankEntry struct {
	StudentID    uuid.UUID
	AverageScore int
	TotalPoints  float64
}

// RankOf sorts all students by (average desc, total points desc) and returns
// the 1-based position of the given student. 0 when the student is absent.
// Linear over the student population, recomputed per call.
func RankOf(entries []RankEntry, studentID uuid.UUID) int {
	sorted := make([]RankEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].AverageScore != sorted[j].AverageScore {
			return sorted[i].AverageScore > sorted[j].AverageScore
		}
		return sorted[i].TotalPoints > sorted[j].TotalPoints
	})
	for i := range sorted {
		if sorted[i].StudentID == studentID {
			return i + 1
		}
	}
	return 0
}

/* ========================================================
   Loader + persistence
======================================================== */

// RecomputeStudentStats rebuilds the snapshot for one student from the
// submissions table, persists it and returns the fresh values.
// Returns gorm.ErrRecordNotFound when the student does not exist.
func RecomputeStudentStats(db *gorm.DB, studentID uuid.UUID) (StudentStats, error) {
	var usr userModel.UserModel
	if err := db.Where("user_id = ? AND user_role = 'student'", studentID).First(&usr).Error; err != nil {
		return StudentStats{}, err
	}

	var rows []GradedRow
	if err := db.Table("submissions").
		Select("submissions.submission_status AS status, submissions.submission_score AS score, assignments.assignment_total_points AS total_points").
		Joins("JOIN assignments ON assignments.assignment_id = submissions.submission_assignment_id AND assignments.assignment_deleted_at IS NULL").
		Where("submissions.submission_student_id = ? AND submissions.submission_deleted_at IS NULL", studentID).
		Scan(&rows).Error; err != nil {
		return StudentStats{}, err
	}

	st := ComputeStats(rows)
	st.StreakDays = usr.UserStreakDays
	st.Badges = ComputeBadges(st.AverageScore, st.CompletedAssignments, st.StreakDays)

	if err := db.Model(&userModel.UserModel{}).
		Where("user_id = ?", studentID).
		Updates(map[string]interface{}{
			"user_stats_completed_assignments": st.CompletedAssignments,
			"user_stats_average_score":         st.AverageScore,
			"user_stats_total_points":          st.TotalPoints,
			"user_badges":                      pq.StringArray(st.Badges),
		}).Error; err != nil {
		return StudentStats{}, err
	}

	// rank is resolved against the whole population after the write
	var entries []RankEntry
	if err := db.Table("users").
		Select("user_id AS student_id, user_stats_average_score AS average_score, user_stats_total_points AS total_points").
		Where("user_role = 'student' AND user_deleted_at IS NULL").
		Scan(&entries).Error; err != nil {
		return StudentStats{}, err
	}
	st.Rank = RankOf(entries, studentID)

	if err := db.Model(&userModel.UserModel{}).
		Where("user_id = ?", studentID).
		Update("user_stats_rank", st.Rank).Error; err != nil {
		return StudentStats{}, err
	}
	return st, nil
}

// RecomputeStudentStatsAsync is the fire-and-forget variant used after
// grading; failures never reach the caller.
func RecomputeStudentStatsAsync(db *gorm.DB, studentID uuid.UUID) {
	go func() {
		if _, err := RecomputeStudentStats(db, studentID); err != nil &&
			!errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[stats] recompute for %s failed: %v", studentID, err)
		}
	}()
}

/* ========================================================
   Streak
======================================================== */

// TouchStreak bumps the activity streak: consecutive days increment,
// a gap resets to 1, same-day repeats are a no-op.
func TouchStreak(db *gorm.DB, userID uuid.UUID) error {
	var usr userModel.UserModel
	if err := db.Where("user_id = ?", userID).First(&usr).Error; err != nil {
		return err
	}

	today := truncateToDay(time.Now().UTC())
	streak := 1
	if usr.UserLastActiveDate != nil {
		last := truncateToDay(usr.UserLastActiveDate.UTC())
		switch {
		case last.Equal(today):
			return nil
		case last.Equal(today.AddDate(0, 0, -1)):
			streak = usr.UserStreakDays + 1
		}
	}

	return db.Model(&userModel.UserModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"user_streak_days":      streak,
			"user_last_active_date": today,
		}).Error
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

/* ========================================================
   HTTP handlers
======================================================== */

// POST /api/s/stats/recompute (student recomputes own snapshot)
func RecomputeOwnStats(db *gorm.DB, c *fiber.Ctx) error {
	id, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	st, err := RecomputeStudentStats(db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helpers.JsonOK(c, "Stats recomputed", st)
}

// GET /api/u/leaderboard
func Leaderboard(db *gorm.DB, c *fiber.Ctx) error {
	paging := helpers.ResolvePaging(c, 20, 100)

	var total int64
	q := db.Table("users").Where("user_role = 'student' AND user_deleted_at IS NULL")
	if err := q.Count(&total).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []struct {
		UserID                uuid.UUID      `json:"user_id"`
		UserName              string         `json:"user_name"`
		UserStatsAverageScore int            `json:"average_score"`
		UserStatsTotalPoints  float64        `json:"total_points"`
		UserStatsRank         int            `json:"rank"`
		UserBadges            pq.StringArray `json:"badges" gorm:"type:text[]"`
	}
	if err := q.
		Select("user_id, user_name, user_stats_average_score, user_stats_total_points, user_stats_rank, user_badges").
		Order("user_stats_average_score DESC, user_stats_total_points DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Scan(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helpers.JsonList(c, "OK", rows, helpers.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
