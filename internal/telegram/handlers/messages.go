package handlers

// User-facing texts of the storefront. The bot speaks Russian.
const (
	msgWelcome       = "Добро пожаловать в наш магазин PANDA SHOP 🐼"
	msgStop          = "Остановка работы бота."
	msgNoAccess      = "У вас нет доступа к этой команде."
	msgChooseAction  = "Выберите действие:"
	msgUnknown       = "Неизвестная команда."
	msgGenericError  = "Произошла ошибка. Пожалуйста, попробуйте позже."
	msgNotRegistered = "Ошибка: вы не зарегистрированы. Нажмите /start для регистрации."

	msgCatalogTitle   = "Что будем покупать?"
	msgChooseProduct  = "Выберите товар:"
	msgCategoryEmpty  = "В этой категории пока нет товаров."
	msgProductMissing = "Товар не найден."

	msgCartEmpty   = "Ваша корзина пуста."
	msgCartCleared = "Ваша корзина была очищена."
	msgCartError   = "Произошла ошибка при очистке корзины. Пожалуйста, попробуйте позже."

	msgChoosePayment    = "Пожалуйста, выберите способ оплаты."
	msgBadPayment       = "Пожалуйста, выберите правильный способ оплаты."
	msgSendReceipt      = "Пожалуйста, отправьте чек о платеже."
	msgSendReceiptPhoto = "Пожалуйста, отправьте фотографию чека."
	msgCryptoHowTo      = "Для оплаты криптовалютой, пожалуйста, используйте бот @send и отправьте скриншот подтверждения."
	msgAskName          = "Пожалуйста, введите ваше имя."
	msgAskAddress       = "Пожалуйста, введите ваш адрес."
	msgAskPhone         = "Пожалуйста, введите ваш номер телефона."
	msgOrderDone        = "Ваш заказ был успешно оформлен. Спасибо за покупку!"
	msgOrderError       = "Произошла ошибка при оформлении заказа. Пожалуйста, попробуйте позже."
	msgOrderCancelled   = "Заказ отменен."
	msgNoActiveOrder    = "Нет активного заказа. Нажмите «Оформить заказ» в корзине."
	msgReceiptCaption   = "Фото чека от пользователя."

	msgAdminPanel          = "Вы вошли в админ панель. Добавьте новый товар."
	msgAskCategoryName     = "Введите название новой категории:"
	msgCategoryNameEmpty   = "Название не может быть пустым. Введите название новой категории:"
	msgNoCategories        = "Ошибка: Нет доступных категорий."
	msgAskProductName      = "Введите название товара:"
	msgProductNameEmpty    = "Название не может быть пустым. Введите название товара:"
	msgChooseCategory      = "Выберите категорию товара:"
	msgBadCategoryChoice   = "Ошибка при выборе категории. Попробуйте снова."
	msgAskPrice            = "Введите цену товара:"
	msgBadPrice            = "Некорректный формат цены. Попробуйте снова."
	msgAskSizes            = "Введите доступные размеры (разделите запятой):"
	msgAskPhoto            = "Загрузите фотографию товара:"
	msgPhotoMissing        = "Фотография не загружена. Попробуйте снова."
	msgProductInsertFailed = "Ошибка при добавлении товара в базу данных."
	msgAskDeleteID         = "Введите ID продукта для удаления:"
	msgBadDeleteID         = "Некорректный ID продукта. Попробуйте снова."
)

// Payment method labels shown on the checkout reply keyboard. The payment
// step matches replies against these exact strings.
const (
	labelPayCard   = "Оплатить картой"
	labelPayCrypto = "Оплатить криптовалютой"
)

// Button captions.
const (
	btnCatalog   = "Каталог"
	btnBack      = "Назад"
	btnAddToCart = "В корзину"
	btnViewCart  = "Посмотреть корзину"
	btnClearCart = "Очистить корзину"
	btnCheckout  = "Оформить заказ"
	btnConfirm   = "Подтвердить"
	btnCancel    = "Отменить"
)
