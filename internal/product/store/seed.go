package store

// SampleProducts returns the catalog the service starts with when seeding is enabled.
func SampleProducts() []Product {
	return []Product{
		{Name: "Кокакола", Category: "Напитки", Description: "Напиток безалкагольный сильногазированный", Price: 200, Count: 100},
		{Name: "Мармеладки Фансы", Category: "Сладости", Description: "Жевательный мармелад с кислой посыпкой", Price: 150, Count: 55},
		{Name: "Сок апельсиновый", Category: "Напитки", Description: "Фруктовый сок с мякотью", Price: 100, Count: 150},
		{Name: "Помидоры черри", Category: "Овощи", Description: "24 штуки в упаковке. Страна производства: Азербайджан", Price: 300, Count: 60},
		{Name: "Огурцы", Category: "Овощи", Description: "Огурец премиальный хрустящий 1 штука", Price: 350, Count: 45},
		{Name: "Крупа гречневая", Category: "Крупы", Description: "Ядрица 250г", Price: 50, Count: 1000},
		{Name: "Яблоки", Category: "Фрукты", Description: "Сорт: Белый налив", Price: 155, Count: 30},
		{Name: "Жвачка", Category: "Сладости", Description: "Жевательная резинка \"Турбо\"", Price: 1, Count: 200},
		{Name: "Бананы", Category: "Фрукты", Description: "Бананы спелые. Страна производства: Египет", Price: 250, Count: 40},
		{Name: "Крупа рисовая", Category: "Крупы", Description: "Белый длиннозерный рис для плова", Price: 60, Count: 5},
	}
}
