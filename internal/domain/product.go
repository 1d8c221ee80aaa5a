package domain

// Category описывает категорию меню (prodClass3 на стороне API ресторана).
type Category struct {
	ID   string
	Name string
}

// Product — нормализованная карточка товара, общая для меню и корзины.
// Поля бэкенда (prodId, prodName, priceStd, stdUnit, prodImage) приводятся
// к этому виду на границе fetch-слоя.
type Product struct {
	ID       string
	Name     string
	Price    float64
	Category string
	Unit     string
	Image    string
	// Enabled показывает, выставлен ли товар на витрину; публичный каталог
	// отдаёт только включённые товары, флаг нужен админке.
	Enabled bool
}

// StoreInfo — данные магазина для главной страницы и админки.
type StoreInfo struct {
	StoreID         string
	Name            string
	Address         string
	ContactTel      string
	BusinessHours   string
	BackgroundImage string
}
