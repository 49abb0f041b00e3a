package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aivra_backend/internal/config"
	"aivra_backend/internal/middleware"
	"aivra_backend/internal/model"
	"aivra_backend/internal/repository"
	"aivra_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
}

// setupTestEnv 搭建与生产路由一致的最小测试路由
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Course{}, &model.Enrollment{}))

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret-at-least-32-characters-long",
			ExpireTime: time.Hour,
		},
	}

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	authController := NewAuthController(service.NewAuthService(userRepo, cfg))
	userController := NewUserController(service.NewUserService(userRepo))
	courseController := NewCourseController(service.NewCourseService(courseRepo))
	enrollmentController := NewEnrollmentController(service.NewEnrollmentService(enrollmentRepo))
	dashboardController := NewDashboardController(service.NewDashboardService(enrollmentRepo, courseRepo))

	router := gin.New()
	api := router.Group("/api")
	{
		api.POST("/register", authController.Register)
		api.POST("/login", authController.Login)
		api.GET("/courses", courseController.GetAllCourses)
		api.GET("/courses/:id", courseController.GetCourseByID)
	}

	authGroup := api.Group("")
	authGroup.Use(middleware.AuthMiddleware(cfg, userRepo))
	{
		authGroup.GET("/users/profile", userController.GetProfile)
		authGroup.GET("/enrollments", enrollmentController.GetUserEnrollments)
		authGroup.GET("/enrollments/:courseId", enrollmentController.GetEnrollment)
		authGroup.POST("/enrollments/:courseId/progress", enrollmentController.UpdateProgress)
		authGroup.GET("/dashboard", dashboardController.GetDashboard)

		professor := authGroup.Group("")
		professor.Use(middleware.RoleMiddleware(model.Professor))
		{
			professor.POST("/courses", courseController.CreateCourse)
			professor.PUT("/courses/:id", courseController.UpdateCourse)
			professor.DELETE("/courses/:id", courseController.DeleteCourse)
		}
	}

	return &testEnv{router: router, db: db, cfg: cfg}
}

func (env *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// registerAndLogin 注册并登录一个用户，返回令牌和用户ID
func (env *testEnv) registerAndLogin(t *testing.T, email string) (string, string) {
	t.Helper()

	w := env.request(t, http.MethodPost, "/api/register", "", gin.H{
		"email":     email,
		"password":  "password123",
		"firstName": "Test",
		"lastName":  "User",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPost, "/api/login", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string     `json:"token"`
		User  model.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Message
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)

	env.registerAndLogin(t, "dup@example.com")

	w := env.request(t, http.MethodPost, "/api/register", "", gin.H{
		"email":    "dup@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already registered", decodeError(t, w))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := setupTestEnv(t)

	env.registerAndLogin(t, "user@example.com")

	w := env.request(t, http.MethodPost, "/api/login", "", gin.H{
		"email":    "user@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decodeError(t, w))
}

func TestAuth_MissingToken(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/enrollments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized: No token provided", decodeError(t, w))
}

func TestAuth_MalformedHeader(t *testing.T) {
	env := setupTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/enrollments", nil)
	req.Header.Set("Authorization", "Basic abc123")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/enrollments", "not-a-valid-token", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden: Invalid token", decodeError(t, w))
}

func TestEnrollmentFlow(t *testing.T) {
	env := setupTestEnv(t)
	token, userID := env.registerAndLogin(t, "student@example.com")

	// 首次访问自动创建
	w := env.request(t, http.MethodGet, "/api/enrollments/course-1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var enrollment model.Enrollment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &enrollment))
	assert.Equal(t, userID+"_course-1", enrollment.ID)
	assert.NotNil(t, enrollment.CompletedChapters)
	assert.Empty(t, enrollment.CompletedChapters)

	// 标记章节完成
	w = env.request(t, http.MethodPost, "/api/enrollments/course-1/progress", token, gin.H{
		"chapterId":   "ch1",
		"isCompleted": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var progressResp struct {
		Message           string   `json:"message"`
		CompletedChapters []string `json:"completedChapters"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &progressResp))
	assert.Equal(t, "Progress updated", progressResp.Message)
	assert.Equal(t, []string{"ch1"}, progressResp.CompletedChapters)

	// 列表能看到这条记录
	w = env.request(t, http.MethodGet, "/api/enrollments", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []model.Enrollment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, []string{"ch1"}, list[0].CompletedChapters)
}

func TestUpdateProgress_WithoutEnrollment(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.registerAndLogin(t, "student@example.com")

	w := env.request(t, http.MethodPost, "/api/enrollments/never-read/progress", token, gin.H{
		"chapterId":   "ch1",
		"isCompleted": true,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Enrollment not found", decodeError(t, w))
}

func TestUpdateProgress_MissingFields(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.registerAndLogin(t, "student@example.com")

	w := env.request(t, http.MethodPost, "/api/enrollments/course-1/progress", token, gin.H{
		"chapterId": "ch1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCourse_NotFound(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/courses/no-such-course", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Course not found", decodeError(t, w))
}

func TestCreateCourse_RoleEnforcement(t *testing.T) {
	env := setupTestEnv(t)
	token, userID := env.registerAndLogin(t, "teacher@example.com")

	body := gin.H{"title": "Go 并发编程"}

	// 默认角色 student，禁止建课
	w := env.request(t, http.MethodPost, "/api/courses", token, body)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden: Insufficient permissions", decodeError(t, w))

	// 提升为 professor 后同一令牌立即可用（角色每次请求重查库）
	require.NoError(t, env.db.Model(&model.User{}).
		Where("id = ?", userID).
		Update("role", model.Professor).Error)

	w = env.request(t, http.MethodPost, "/api/courses", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	var course model.Course
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &course))
	assert.Equal(t, "Go 并发编程", course.Title)
	assert.Equal(t, userID, course.InstructorID)
	assert.Equal(t, model.CoursePublished, course.Status)
}

func TestCreateCourse_AdminAllowed(t *testing.T) {
	env := setupTestEnv(t)
	token, userID := env.registerAndLogin(t, "admin@example.com")

	require.NoError(t, env.db.Model(&model.User{}).
		Where("id = ?", userID).
		Update("role", model.Admin).Error)

	w := env.request(t, http.MethodPost, "/api/courses", token, gin.H{"title": "系统设计"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestDashboard(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.registerAndLogin(t, "student@example.com")

	course := &model.Course{
		Title: "分布式系统",
		Level: "Intermediate",
		Modules: []model.Module{
			{ID: "m1", Chapters: []model.Chapter{{ID: "c1"}, {ID: "c2"}}},
			{ID: "m2", Chapters: []model.Chapter{{ID: "c3"}, {ID: "c4"}}},
		},
	}
	require.NoError(t, env.db.Create(course).Error)

	w := env.request(t, http.MethodGet, "/api/enrollments/"+course.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodPost, "/api/enrollments/"+course.ID+"/progress", token, gin.H{
		"chapterId":   "c1",
		"isCompleted": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var dashboard []service.EnrolledCourse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dashboard))
	require.Len(t, dashboard, 1)
	assert.Equal(t, "分布式系统", dashboard[0].CourseTitle)
	assert.Equal(t, 4, dashboard[0].TotalChapters)
	assert.Equal(t, 25, dashboard[0].DerivedProgress)
}
