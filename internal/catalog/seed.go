package catalog

import (
	"time"

	"github.com/teamcook/formcheck/internal/models"
)

// seedVideos is the bootstrap dataset written the first time the catalog key
// is missing from the backing store. Ordering is most-recent-insertion-first,
// matching the invariant AddVideo maintains afterwards.
func seedVideos() []models.Video {
	return []models.Video{
		{
			ID:            "1",
			Title:         "Deadlift 100kg, please check my form!",
			Author:        "health_boy",
			FeedbackCount: 8,
			ViewCount:     102,
			Category:      models.CategoryDeadlift,
			CreatedAt:     time.Date(2025, 11, 7, 14, 0, 0, 0, time.UTC),
			MediaRef:      "/mock_deadlift.mp4",
		},
		{
			ID:            "2",
			Title:         "Squat beginner here, my knees hurt",
			Author:        "beginner_kim",
			FeedbackCount: 12,
			ViewCount:     150,
			Category:      models.CategorySquat,
			CreatedAt:     time.Date(2025, 11, 7, 13, 0, 0, 0, time.UTC),
			MediaRef:      "/mock_squat.mp4",
		},
		{
			ID:            "3",
			Title:         "Bench press 60kg, can't feel my chest working",
			Author:        "muscle_king",
			FeedbackCount: 5,
			ViewCount:     88,
			Category:      models.CategoryBenchPress,
			CreatedAt:     time.Date(2025, 11, 6, 10, 0, 0, 0, time.UTC),
			MediaRef:      "/mock_benchpress.mp4",
		},
		{
			ID:            "4",
			Title:         "How does my overhead press look?",
			Author:        "shoulder_gant",
			FeedbackCount: 7,
			ViewCount:     95,
			Category:      models.CategoryOverheadPress,
			CreatedAt:     time.Date(2025, 11, 5, 15, 0, 0, 0, time.UTC),
			MediaRef:      "/mock_overheadpress.mp4",
		},
		{
			ID:            "5",
			Title:         "Squat 80kg, please check my depth",
			Author:        "squat_lover",
			FeedbackCount: 15,
			ViewCount:     210,
			Category:      models.CategorySquat,
			CreatedAt:     time.Date(2025, 11, 7, 10, 0, 0, 0, time.UTC),
			MediaRef:      "/mock_squat2.mp4",
		},
		{
			ID:            "101",
			Title:         "My best squat 1RM attempt",
			Author:        "park",
			FeedbackCount: 3,
			ViewCount:     45,
			Category:      models.CategorySquat,
			CreatedAt:     time.Date(2025, 11, 8, 9, 0, 0, 0, time.UTC),
			MediaRef:      "/mock_mypage_squat.mp4",
		},
		{
			ID:            "102",
			Title:         "Routine challenge - deadlift final set",
			Author:        "park",
			FeedbackCount: 1,
			ViewCount:     22,
			Category:      models.CategoryDeadlift,
			CreatedAt:     time.Date(2025, 11, 8, 11, 0, 0, 0, time.UTC),
			MediaRef:      "/mock_mypage_deadlift.mp4",
		},
	}
}

// seedThreads builds the in-memory feedback threads for the current videos.
// Threads are not persisted; a restart rebuilds them from this seed.
func seedThreads(videos []models.Video) map[string][]models.Comment {
	known := map[string][]models.Comment{
		"1": {
			{ID: 102, VideoID: "1", Author: "deadlift_pro", Text: "Wow, that strength is impressive!", CreatedAt: time.Date(2025, 11, 7, 15, 30, 0, 0, time.UTC)},
			{ID: 101, VideoID: "1", Author: "trainer_kim", Text: "Your lower back rounds slightly. Brace harder and drop your hips a bit.", CreatedAt: time.Date(2025, 11, 7, 15, 0, 0, 0, time.UTC)},
		},
		"2": {
			{ID: 203, VideoID: "2", Author: "user1", Text: "Rooting for you!", CreatedAt: time.Date(2025, 11, 7, 16, 0, 0, 0, time.UTC)},
			{ID: 202, VideoID: "2", Author: "beginner_helper", Text: "Are your soles too cushioned? A flat, firm shoe helps a lot.", CreatedAt: time.Date(2025, 11, 7, 15, 0, 0, 0, time.UTC)},
			{ID: 201, VideoID: "2", Author: "squat_master", Text: "Knee pain usually comes from ankle mobility or the hips. Try foam rolling first.", CreatedAt: time.Date(2025, 11, 7, 14, 0, 0, 0, time.UTC)},
		},
		"3": {
			{ID: 301, VideoID: "3", Author: "bench_expert", Text: "Tuck your elbows closer and pin your shoulder blades. The stimulus will change.", CreatedAt: time.Date(2025, 11, 6, 12, 0, 0, 0, time.UTC)},
			{ID: 302, VideoID: "3", Author: "muscle_lover", Text: "You're moving too fast. Take about three seconds on the way down.", CreatedAt: time.Date(2025, 11, 5, 12, 0, 0, 0, time.UTC)},
		},
	}

	threads := make(map[string][]models.Comment, len(videos))
	for _, v := range videos {
		if thread, ok := known[v.ID]; ok {
			threads[v.ID] = thread
			continue
		}
		threads[v.ID] = defaultThread(v.ID, v.CreatedAt)
	}
	return threads
}

// defaultThread is the placeholder thread a video starts with.
func defaultThread(videoID string, at time.Time) []models.Comment {
	return []models.Comment{
		{
			ID:        at.UnixMilli(),
			VideoID:   videoID,
			Author:    "feedback_bot",
			Text:      "Analyzing your video. Expert feedback is on its way.",
			CreatedAt: at,
		},
	}
}
