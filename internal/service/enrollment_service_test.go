package service

import (
	"fmt"
	"testing"
	"time"

	"aivra_backend/internal/model"
	"aivra_backend/internal/repository"
	"aivra_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 每个测试用独立命名的内存库，避免测试间状态泄漏
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Course{}, &model.Enrollment{}))
	return db
}

func newEnrollmentService(t *testing.T) (*EnrollmentService, *gorm.DB) {
	db := setupTestDB(t)
	return NewEnrollmentService(repository.NewEnrollmentRepository(db)), db
}

func TestGetOrCreateEnrollment_CreatesOnFirstAccess(t *testing.T) {
	s, _ := newEnrollmentService(t)

	e, err := s.GetOrCreateEnrollment("u1", "c1")
	require.NoError(t, err)

	assert.Equal(t, "u1_c1", e.ID)
	assert.Equal(t, "u1", e.UserID)
	assert.Equal(t, "c1", e.CourseID)
	assert.Empty(t, e.CompletedChapters)
	assert.NotNil(t, e.CompletedChapters)
	assert.Equal(t, 0, e.Progress)
	assert.False(t, e.EnrolledAt.IsZero())
	assert.False(t, e.LastAccessedAt.IsZero())
}

func TestGetOrCreateEnrollment_SecondCallReturnsExisting(t *testing.T) {
	s, _ := newEnrollmentService(t)

	first, err := s.GetOrCreateEnrollment("u1", "c1")
	require.NoError(t, err)

	_, err = s.SetChapterCompletion("u1", "c1", "ch1", true)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	second, err := s.GetOrCreateEnrollment("u1", "c1")
	require.NoError(t, err)

	// 同一个记录标识，已有进度与选课时间不被重置
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, []string{"ch1"}, second.CompletedChapters)
	assert.WithinDuration(t, first.EnrolledAt, second.EnrolledAt, time.Second)

	// 读操作的副作用：每次调用都推进 lastAccessedAt
	assert.True(t, second.LastAccessedAt.After(first.LastAccessedAt))
}

func TestSetChapterCompletion_NoEnrollment(t *testing.T) {
	s, _ := newEnrollmentService(t)

	_, err := s.SetChapterCompletion("u1", "c1", "ch1", true)
	assert.ErrorIs(t, err, util.ErrEnrollmentNotFound)
}

func TestSetChapterCompletion_IdempotentMark(t *testing.T) {
	s, _ := newEnrollmentService(t)

	_, err := s.GetOrCreateEnrollment("u1", "c1")
	require.NoError(t, err)

	chapters, err := s.SetChapterCompletion("u1", "c1", "ch1", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"ch1"}, chapters)

	// 重复标记不会产生重复项
	chapters, err = s.SetChapterCompletion("u1", "c1", "ch1", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"ch1"}, chapters)
}

func TestSetChapterCompletion_IdempotentUnmark(t *testing.T) {
	s, _ := newEnrollmentService(t)

	_, err := s.GetOrCreateEnrollment("u1", "c1")
	require.NoError(t, err)

	// 取消一个从未标记过的章节：无错误，集合不变
	chapters, err := s.SetChapterCompletion("u1", "c1", "ghost", false)
	require.NoError(t, err)
	assert.Empty(t, chapters)
}

func TestSetChapterCompletion_ToggleRoundTrip(t *testing.T) {
	s, _ := newEnrollmentService(t)

	_, err := s.GetOrCreateEnrollment("u1", "c1")
	require.NoError(t, err)

	_, err = s.SetChapterCompletion("u1", "c1", "ch1", true)
	require.NoError(t, err)
	_, err = s.SetChapterCompletion("u1", "c1", "ch2", true)
	require.NoError(t, err)

	chapters, err := s.SetChapterCompletion("u1", "c1", "ch2", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"ch1"}, chapters)
}

func TestSetChapterCompletion_DoesNotTouchStoredProgress(t *testing.T) {
	s, _ := newEnrollmentService(t)

	_, err := s.GetOrCreateEnrollment("u1", "c1")
	require.NoError(t, err)

	_, err = s.SetChapterCompletion("u1", "c1", "ch1", true)
	require.NoError(t, err)

	e, err := s.GetOrCreateEnrollment("u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, 0, e.Progress)
}

func TestListEnrollments(t *testing.T) {
	s, _ := newEnrollmentService(t)

	_, err := s.GetOrCreateEnrollment("u1", "c1")
	require.NoError(t, err)
	_, err = s.GetOrCreateEnrollment("u1", "c2")
	require.NoError(t, err)
	_, err = s.GetOrCreateEnrollment("u2", "c1")
	require.NoError(t, err)

	enrollments, err := s.ListEnrollments("u1")
	require.NoError(t, err)
	assert.Len(t, enrollments, 2)
	for _, e := range enrollments {
		assert.Equal(t, "u1", e.UserID)
	}

	enrollments, err = s.ListEnrollments("nobody")
	require.NoError(t, err)
	assert.NotNil(t, enrollments)
	assert.Empty(t, enrollments)
}

func TestEnrollment_DedupOnLoad(t *testing.T) {
	s, db := newEnrollmentService(t)

	// 直接写入一条带重复项的脏记录
	now := time.Now()
	require.NoError(t, db.Create(&model.Enrollment{
		ID:                "u1_c1",
		UserID:            "u1",
		CourseID:          "c1",
		EnrolledAt:        now,
		CompletedChapters: []string{"ch1", "ch2", "ch1"},
		LastAccessedAt:    now,
	}).Error)

	e, err := s.GetOrCreateEnrollment("u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"ch1", "ch2"}, e.CompletedChapters)
}

func TestDeriveProgressPercent(t *testing.T) {
	twoByTwo := []model.Module{
		{ID: "m1", Chapters: []model.Chapter{{ID: "m1c1"}, {ID: "m1c2"}}},
		{ID: "m2", Chapters: []model.Chapter{{ID: "m2c1"}, {ID: "m2c2"}}},
	}

	tests := []struct {
		name      string
		completed []string
		modules   []model.Module
		want      int
	}{
		{"无章节课程不除零", nil, nil, 0},
		{"空集合", nil, twoByTwo, 0},
		{"四分之二", []string{"m1c1", "m1c2"}, twoByTwo, 50},
		{"四分之一", []string{"m1c1"}, twoByTwo, 25},
		{"全部完成", []string{"m1c1", "m1c2", "m2c1", "m2c2"}, twoByTwo, 100},
		{"三分之一四舍五入", []string{"a"}, []model.Module{
			{ID: "m1", Chapters: []model.Chapter{{ID: "a"}, {ID: "b"}, {ID: "c"}}},
		}, 33},
		{"三分之二四舍五入", []string{"a", "b"}, []model.Module{
			{ID: "m1", Chapters: []model.Chapter{{ID: "a"}, {ID: "b"}, {ID: "c"}}},
		}, 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveProgressPercent(tt.completed, tt.modules))
		})
	}
}

// 完整走查：2个模块各2章节的课程，按规格叙述逐步推进
func TestProgressScenario(t *testing.T) {
	s, _ := newEnrollmentService(t)

	modules := []model.Module{
		{ID: "m1", Chapters: []model.Chapter{{ID: "m1c1"}, {ID: "m1c2"}}},
		{ID: "m2", Chapters: []model.Chapter{{ID: "m2c1"}, {ID: "m2c2"}}},
	}

	e, err := s.GetOrCreateEnrollment("u1", "c1")
	require.NoError(t, err)
	assert.Empty(t, e.CompletedChapters)
	assert.Equal(t, 0, DeriveProgressPercent(e.CompletedChapters, modules))

	chapters, err := s.SetChapterCompletion("u1", "c1", "m1c1", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"m1c1"}, chapters)
	assert.Equal(t, 25, DeriveProgressPercent(chapters, modules))

	chapters, err = s.SetChapterCompletion("u1", "c1", "m1c1", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"m1c1"}, chapters)
	assert.Equal(t, 25, DeriveProgressPercent(chapters, modules))

	chapters, err = s.SetChapterCompletion("u1", "c1", "m1c2", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"m1c1", "m1c2"}, chapters)
	assert.Equal(t, 50, DeriveProgressPercent(chapters, modules))
}
