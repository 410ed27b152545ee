package engine

const (
	DefaultCategoryID = "default"

	AchievementFirstTask  = "first-task"
	AchievementFirstTimer = "first-timer"
	AchievementTasks5     = "tasks-5"
	AchievementTasks10    = "tasks-10"
	AchievementStreak3    = "streak-3"
	AchievementStreak7    = "streak-7"
	AchievementCollector  = "collector"
)

func intPtr(v int) *int { return &v }

func defaultCategories() []Category {
	return []Category{
		{ID: DefaultCategoryID, Name: "Vanilla", Color: "#FEF7CD", Price: 0, Owned: true},
		{ID: "strawberry", Name: "Strawberry", Color: "#FFDEE2", Price: 50},
		{ID: "chocolate", Name: "Chocolate", Color: "#8B4513", Price: 50},
		{ID: "mint", Name: "Mint", Color: "#F2FCE2", Price: 75},
		{ID: "blueberry", Name: "Blueberry", Color: "#E5DEFF", Price: 75},
		{ID: "rainbow", Name: "Rainbow", Color: "linear-gradient(90deg, #FFDEE2, #FEF7CD, #F2FCE2, #E5DEFF)", Price: 150},
	}
}

func defaultShopItems() []ShopItem {
	return []ShopItem{
		{ID: "coffee", Name: "Coffee Break", Description: "Take a 15 minute coffee break", Price: 50, Image: "☕"},
		{ID: "snack", Name: "Snack Time", Description: "Enjoy your favorite snack", Price: 100, Image: "🍫"},
		{ID: "movie", Name: "Movie Night", Description: "Watch your favorite movie", Price: 300, Image: "🎬"},
		{ID: "book", Name: "Book Time", Description: "Read a chapter of your book", Price: 200, Image: "📚"},
		{ID: "nap", Name: "Power Nap", Description: "Take a 20 minute power nap", Price: 250, Image: "💤"},
	}
}

func defaultAchievements() []Achievement {
	cumulative := func(id, title, desc, icon string, goal int) Achievement {
		return Achievement{ID: id, Title: title, Description: desc, Icon: icon, Progress: intPtr(0), Goal: intPtr(goal)}
	}
	return []Achievement{
		{ID: AchievementFirstTask, Title: "First Bite", Description: "Complete your first task", Icon: "🍰"},
		{ID: AchievementFirstTimer, Title: "Oven Timer", Description: "Finish your first focus session", Icon: "⏰"},
		cumulative(AchievementTasks5, "Cupcake Batch", "Complete 5 tasks", "🧁", 5),
		cumulative(AchievementTasks10, "Master Baker", "Complete 10 tasks", "🎂", 10),
		cumulative(AchievementStreak3, "Warm Oven", "Stay active 3 days in a row", "🔥", 3),
		cumulative(AchievementStreak7, "Week of Treats", "Stay active 7 days in a row", "🌟", 7),
		cumulative(AchievementCollector, "Flavor Collector", "Own 4 cake flavors", "🏆", 4),
	}
}
