package bot

// Reply-keyboard layouts, one per menu. Button labels double as routing keys:
// the router matches on the exact label text after classification.
var (
	mainMenu = [][]string{
		{"📋 Задачи", "🍽 Дневник питания"},
		{"💪 Привычки", "📝 Заметки"},
		{"📊 Статистика", "❓ Помощь"},
	}

	tasksMenu = [][]string{
		{"➕ Добавить задачу", "📋 Мои задачи"},
		{"✅ Завершить задачу", "❌ Удалить задачу"},
		{"🔙 Главное меню"},
	}

	foodMenu = [][]string{
		{"➕ Записать прием пищи", "📊 Сегодняшнее питание"},
		{"🥗 Завтрак", "🍝 Обед"},
		{"🍽 Ужин", "🍎 Перекус"},
		{"🔙 Главное меню"},
	}

	habitsMenu = [][]string{
		{"➕ Добавить привычку", "📋 Мои привычки"},
		{"✅ Отметить выполнение"},
		{"🔙 Главное меню"},
	}

	notesMenu = [][]string{
		{"➕ Создать заметку", "📋 Мои заметки"},
		{"🔍 Просмотреть заметку"},
		{"🔙 Главное меню"},
	}
)
