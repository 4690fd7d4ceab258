package respond

// entry holds the authored texts for one intent label, keyed by language
// code. Entries stay in definition order: tier-3 containment matching scans
// this slice top to bottom, so the order here is the documented tie-breaker.
// The legacy table contained duplicate keys with identical texts; they were
// collapsed keeping the last-defined value, which is byte-identical to the
// first in every case.
type entry struct {
	key   string
	texts map[string]string
}

var responseTable = []entry{
	{"lost_or_stolen_card", map[string]string{
		"tr": "Kart kayıp/çalıntı bildiriminiz alındı. Güvenliğiniz için kartınız geçici olarak kullanıma kapatılmıştır.",
		"en": "We have received your lost/stolen card report. Your card has been temporarily blocked for your security.",
	}},
	{"change_pin", map[string]string{
		"tr": "Şifre değiştirme işleminiz için sizi güvenlik adımına yönlendiriyorum.",
		"en": "I am redirecting you to the security step for your PIN change.",
	}},
	{"balance_not_updated_after_cheque_or_cash_deposit", map[string]string{
		"tr": "Çek veya nakit yatırma işleminizden sonra bakiye güncellemesi gecikmiş görünüyor. İşleminizi kontrol ediyorum.",
		"en": "Your balance update appears delayed after your cheque or cash deposit. I am checking your transaction.",
	}},
	{"transfer_timing", map[string]string{
		"tr": "Para transferi zamanlaması hakkında bilgi veriyorum. Transfer işlemleri genellikle iş günleri içinde tamamlanır.",
		"en": "I am providing information about transfer timing. Transfer transactions are usually completed within business days.",
	}},
	{"fx_rate", map[string]string{
		"tr": "Döviz kuru bilgilerinizi hazırlıyorum. Güncel kurlar için lütfen birkaç saniye bekleyiniz.",
		"en": "I am preparing your foreign exchange rate information. Please wait a few seconds for current rates.",
	}},
	{"card_delivery_estimate", map[string]string{
		"tr": "Kart teslimat tahmini için bilgilerinizi kontrol ediyorum. Yeni kartınız genellikle 5-7 iş günü içinde adresinize ulaşır.",
		"en": "I am checking your information for card delivery estimate. Your new card usually arrives at your address within 5-7 business days.",
	}},
	{"card_swallowed", map[string]string{
		"tr": "Kartınızın ATM tarafından alındığını görüyorum. Güvenlik nedeniyle kartınız bloke edilmiştir. Yeni kart talebi için sizi yönlendiriyorum.",
		"en": "I can see your card was retained by the ATM. Your card has been blocked for security reasons. I am redirecting you to request a new card.",
	}},
	{"exchange_rate", map[string]string{
		"tr": "Döviz kuru sorgulamanız işleniyor. Güncel kur bilgileri hazırlanıyor.",
		"en": "Your exchange rate inquiry is being processed. Current rate information is being prepared.",
	}},
	{"pending_transfer", map[string]string{
		"tr": "Bekleyen transfer işleminiz kontrol ediliyor. Transfer durumunuz kısa süre içinde paylaşılacak.",
		"en": "Your pending transfer is being checked. Your transfer status will be shared shortly.",
	}},
	{"card_payment_fee_charged", map[string]string{
		"tr": "Kart ödeme ücreti ile ilgili sorgulamanız inceleniyor. Ücret detaylarınız hazırlanıyor.",
		"en": "Your inquiry regarding card payment fee is being reviewed. Your fee details are being prepared.",
	}},
	{"declined_card_payment", map[string]string{
		"tr": "Reddedilen kart ödemesi ile ilgili durumunuz kontrol ediliyor. İşlem detaylarınız inceleniyor.",
		"en": "Your declined card payment status is being checked. Your transaction details are being reviewed.",
	}},
	{"direct_debit_payment_not_recognised", map[string]string{
		"tr": "Tanınmayan otomatik ödeme ile ilgili sorgulamanız kaydedildi. İşlem detaylarınız inceleniyor.",
		"en": "Your inquiry regarding unrecognized direct debit payment has been recorded. Your transaction details are being reviewed.",
	}},
	{"disposable_card_limits", map[string]string{
		"tr": "Tek kullanımlık kart limitleri hakkında bilgi veriyorum. Limit detaylarınız hazırlanıyor.",
		"en": "I am providing information about disposable card limits. Your limit details are being prepared.",
	}},
	{"edit_personal_details", map[string]string{
		"tr": "Kişisel bilgilerinizi güncelleme işlemi için sizi ilgili sayfaya yönlendiriyorum.",
		"en": "I am redirecting you to the relevant page to update your personal details.",
	}},
	{"card_linking", map[string]string{
		"tr": "Kart bağlama işleminiz için gerekli adımları uyguluyorum. İşlem devam ediyor.",
		"en": "I am applying the necessary steps for your card linking process. The transaction is in progress.",
	}},
	{"country_support", map[string]string{
		"tr": "Ülke desteği hakkında bilgi veriyorum. Desteklenen ülkeler listesi hazırlanıyor.",
		"en": "I am providing information about country support. The list of supported countries is being prepared.",
	}},
	{"automatic_top_up", map[string]string{
		"tr": "Otomatik yükleme ayarlarınız kontrol ediliyor. Yükleme tercihleriniz inceleniyor.",
		"en": "Your automatic top-up settings are being checked. Your top-up preferences are being reviewed.",
	}},
	{"balance", map[string]string{
		"tr": "Hesap bakiyenizi kontrol ediyorum. Bakiye bilgileriniz hazırlanıyor.",
		"en": "I am checking your account balance. Your balance information is being prepared.",
	}},
	{"card_acceptance", map[string]string{
		"tr": "Kart kabul durumunuz kontrol ediliyor. Kartınızın kabul edildiği yerler hakkında bilgi veriliyor.",
		"en": "Your card acceptance status is being checked. Information about where your card is accepted is being provided.",
	}},
	{"card_arrival", map[string]string{
		"tr": "Kartınızın teslimat durumu kontrol ediliyor. Teslimat bilgileriniz hazırlanıyor.",
		"en": "Your card delivery status is being checked. Your delivery information is being prepared.",
	}},
	{"card_not_working", map[string]string{
		"tr": "Çalışmayan kart sorununuz inceleniyor. Kartınızın teknik durumu kontrol ediliyor.",
		"en": "Your non-working card issue is being reviewed. Your card's technical status is being checked.",
	}},
	{"contactless_not_working", map[string]string{
		"tr": "Temassız özelliği çalışmayan kartınız için teknik destek sağlanıyor. Sorununuz inceleniyor.",
		"en": "Technical support is being provided for your card with non-working contactless feature. Your issue is being reviewed.",
	}},
	{"get_physical_card", map[string]string{
		"tr": "Fiziksel kart talebiniz alındı. Yeni kart basımı için işlem başlatılıyor.",
		"en": "Your physical card request has been received. The process for new card printing is being initiated.",
	}},
	{"card_payment_wrong_exchange_rate", map[string]string{
		"tr": "Yanlış döviz kuru ile yapılan kart ödemesi sorgulamanız inceleniyor. İşlem detaylarınız kontrol ediliyor.",
		"en": "Your inquiry regarding card payment with wrong exchange rate is being reviewed. Your transaction details are being checked.",
	}},
	{"card_payment_not_recognised", map[string]string{
		"tr": "Tanınmayan kart ödemesi ile ilgili sorgulamanız kaydedildi. İşlem detaylarınız inceleniyor.",
		"en": "Your inquiry regarding unrecognized card payment has been recorded. Your transaction details are being reviewed.",
	}},
	{"verify_top_up", map[string]string{
		"tr": "Yükleme doğrulama işleminiz kontrol ediliyor. Yükleme durumunuz inceleniyor.",
		"en": "Your top-up verification process is being checked. Your top-up status is being reviewed.",
	}},
	{"top_up_by_bank_transfer_charge", map[string]string{
		"tr": "Banka transferi ile yükleme ücreti sorgulamanız inceleniyor. Ücret detaylarınız hazırlanıyor.",
		"en": "Your inquiry regarding top-up charge by bank transfer is being reviewed. Your fee details are being prepared.",
	}},
	{"top_up_by_card_charge", map[string]string{
		"tr": "Kart ile yükleme ücreti sorgulamanız inceleniyor. Ücret detaylarınız hazırlanıyor.",
		"en": "Your inquiry regarding top-up charge by card is being reviewed. Your fee details are being prepared.",
	}},
	{"top_up_failed", map[string]string{
		"tr": "Başarısız yükleme işleminiz inceleniyor. Yükleme hatası tespit edildi, çözüm aranıyor.",
		"en": "Your failed top-up transaction is being reviewed. A top-up error has been detected and a solution is being sought.",
	}},
	{"top_up_limits", map[string]string{
		"tr": "Yükleme limitleri hakkında bilgi veriyorum. Limit detaylarınız hazırlanıyor.",
		"en": "I am providing information about top-up limits. Your limit details are being prepared.",
	}},
	{"top_up_reverted", map[string]string{
		"tr": "İptal edilen yükleme işleminiz kontrol ediliyor. İşlem durumunuz inceleniyor.",
		"en": "Your reverted top-up transaction is being checked. Your transaction status is being reviewed.",
	}},
	{"pending_top_up", map[string]string{
		"tr": "Bekleyen yükleme işleminiz kontrol ediliyor. Yükleme durumunuz kısa süre içinde paylaşılacak.",
		"en": "Your pending top-up transaction is being checked. Your top-up status will be shared shortly.",
	}},
	{"passcode_forgotten", map[string]string{
		"tr": "Unutulan şifre için sıfırlama işlemi başlatılıyor. Güvenlik adımları uygulanıyor.",
		"en": "A reset process for forgotten passcode is being initiated. Security steps are being applied.",
	}},
	{"reverted_card_payment", map[string]string{
		"tr": "İptal edilen kart ödemesi ile ilgili durumunuz kontrol ediliyor. İşlem detaylarınız inceleniyor.",
		"en": "Your reverted card payment status is being checked. Your transaction details are being reviewed.",
	}},
	{"supported_cards_and_currencies", map[string]string{
		"tr": "Desteklenen kartlar ve para birimleri hakkında bilgi veriyorum. Liste hazırlanıyor.",
		"en": "I am providing information about supported cards and currencies. The list is being prepared.",
	}},
	{"unable_to_verify_identity", map[string]string{
		"tr": "Kimlik doğrulama sorununuz inceleniyor. Doğrulama işlemi için alternatif yöntemler kontrol ediliyor.",
		"en": "Your identity verification issue is being reviewed. Alternative methods for verification are being checked.",
	}},
	{"why_verify_identity", map[string]string{
		"tr": "Kimlik doğrulama gerekliliği hakkında bilgi veriyorum. Güvenlik nedenleri açıklanıyor.",
		"en": "I am providing information about identity verification requirements. Security reasons are being explained.",
	}},
	{"verify_my_identity", map[string]string{
		"tr": "Kimlik doğrulama işleminiz başlatılıyor. Güvenlik adımları uygulanıyor.",
		"en": "Your identity verification process is being initiated. Security steps are being applied.",
	}},
	{"age_verification", map[string]string{
		"tr": "Yaş doğrulama işleminiz kontrol ediliyor. Doğrulama adımları uygulanıyor.",
		"en": "Your age verification process is being checked. Verification steps are being applied.",
	}},
	{"apple_pay_or_google_pay", map[string]string{
		"tr": "Apple Pay veya Google Pay ile ilgili sorgulamanız inceleniyor. Dijital cüzdan bilgileriniz hazırlanıyor.",
		"en": "Your inquiry regarding Apple Pay or Google Pay is being reviewed. Your digital wallet information is being prepared.",
	}},
	{"beneficiary_not_allowed", map[string]string{
		"tr": "İzin verilmeyen alıcı ile ilgili transfer durumunuz kontrol ediliyor. İşlem detaylarınız inceleniyor.",
		"en": "Your transfer status regarding non-allowed beneficiary is being checked. Your transaction details are being reviewed.",
	}},
	{"cancel_transfer", map[string]string{
		"tr": "Transfer iptal talebiniz alındı. İptal işlemi başlatılıyor.",
		"en": "Your transfer cancellation request has been received. The cancellation process is being initiated.",
	}},
	{"card_about_to_expire", map[string]string{
		"tr": "Süresi dolmak üzere olan kartınız için yeni kart talebi oluşturuluyor. Kart yenileme işlemi başlatılıyor.",
		"en": "A new card request is being created for your card that is about to expire. The card renewal process is being initiated.",
	}},
	{"complaint", map[string]string{
		"tr": "Şikayetiniz kaydedildi, incelenmeye alındı. En kısa sürede size dönüş yapılacaktır.",
		"en": "Your complaint has been recorded and is under review. You will be contacted as soon as possible.",
	}},
	{"compromised_card", map[string]string{
		"tr": "Güvenliği ihlal edilmiş kart bildiriminiz alındı. Kartınız acil olarak bloke edilmiştir.",
		"en": "Your compromised card report has been received. Your card has been immediately blocked.",
	}},
	{"contactless_payment_after_limit", map[string]string{
		"tr": "Limit sonrası temassız ödeme sorgulamanız inceleniyor. İşlem detaylarınız kontrol ediliyor.",
		"en": "Your inquiry regarding contactless payment after limit is being reviewed. Your transaction details are being checked.",
	}},
	{"direct_debit_inquiry", map[string]string{
		"tr": "Otomatik ödeme sorgulamanız işleniyor. Otomatik ödeme bilgileriniz hazırlanıyor.",
		"en": "Your direct debit inquiry is being processed. Your direct debit information is being prepared.",
	}},
	{"fiat_currency_support", map[string]string{
		"tr": "Fiat para birimi desteği hakkında bilgi veriyorum. Desteklenen para birimleri listesi hazırlanıyor.",
		"en": "I am providing information about fiat currency support. The list of supported currencies is being prepared.",
	}},
	{"get_disposable_virtual_card", map[string]string{
		"tr": "Tek kullanımlık sanal kart talebiniz alındı. Kart oluşturma işlemi başlatılıyor.",
		"en": "Your disposable virtual card request has been received. The card creation process is being initiated.",
	}},
	{"increase_card_limit", map[string]string{
		"tr": "Kart limiti artırma talebiniz alındı. Limit artırma işlemi için onay sürecine geçiliyor.",
		"en": "Your card limit increase request has been received. The approval process for limit increase is being initiated.",
	}},
	{"increase_transaction_limit", map[string]string{
		"tr": "İşlem limiti artırma talebiniz alındı. Limit artırma işlemi için onay sürecine geçiliyor.",
		"en": "Your transaction limit increase request has been received. The approval process for limit increase is being initiated.",
	}},
	{"pending_card_payment", map[string]string{
		"tr": "Bekleyen kart ödemesi kontrol ediliyor. Ödeme durumunuz kısa süre içinde paylaşılacak.",
		"en": "Your pending card payment is being checked. Your payment status will be shared shortly.",
	}},
	{"pin_blocked", map[string]string{
		"tr": "PIN bloke durumunuz kontrol ediliyor. PIN sıfırlama işlemi için sizi güvenlik adımına yönlendiriyorum.",
		"en": "Your PIN blocked status is being checked. I am redirecting you to the security step for PIN reset.",
	}},
	{"receipt", map[string]string{
		"tr": "Makbuz talebiniz işleniyor. İşlem makbuzunuz hazırlanıyor.",
		"en": "Your receipt request is being processed. Your transaction receipt is being prepared.",
	}},
	{"refund_not_showing_up", map[string]string{
		"tr": "Görünmeyen iade işleminiz kontrol ediliyor. İade durumunuz inceleniyor.",
		"en": "Your refund that is not showing up is being checked. Your refund status is being reviewed.",
	}},
	{"request_refund", map[string]string{
		"tr": "İade talebiniz alındı. İade işlemi için onay sürecine geçiliyor.",
		"en": "Your refund request has been received. The approval process for refund is being initiated.",
	}},
	{"reverted_transfer", map[string]string{
		"tr": "İptal edilen transfer işleminiz kontrol ediliyor. Transfer durumunuz inceleniyor.",
		"en": "Your reverted transfer is being checked. Your transfer status is being reviewed.",
	}},
	{"terminate_account", map[string]string{
		"tr": "Hesap kapatma talebiniz alındı. Hesap kapatma işlemi için onay sürecine geçiliyor.",
		"en": "Your account termination request has been received. The approval process for account closure is being initiated.",
	}},
	{"transfer_into_account", map[string]string{
		"tr": "Hesaba transfer işleminiz kontrol ediliyor. Transfer durumunuz inceleniyor.",
		"en": "Your transfer into account is being checked. Your transfer status is being reviewed.",
	}},
	{"transfer_not_received_by_recipient", map[string]string{
		"tr": "Alıcı tarafından alınmayan transfer işleminiz kontrol ediliyor. Transfer durumunuz inceleniyor.",
		"en": "Your transfer not received by recipient is being checked. Your transfer status is being reviewed.",
	}},
	{"virtual_card_not_working", map[string]string{
		"tr": "Çalışmayan sanal kart sorununuz inceleniyor. Kartınızın teknik durumu kontrol ediliyor.",
		"en": "Your non-working virtual card issue is being reviewed. Your card's technical status is being checked.",
	}},
	{"visa_or_mastercard", map[string]string{
		"tr": "Visa veya Mastercard desteği hakkında bilgi veriyorum. Kart türü bilgileriniz hazırlanıyor.",
		"en": "I am providing information about Visa or Mastercard support. Your card type information is being prepared.",
	}},
}

// genericResponses are the tier-4 fallback pools for labels the table does
// not cover, one pool per language.
var genericResponses = map[string][]string{
	"tr": {
		"Talebiniz alındı, inceleniyor. En kısa sürede size yardımcı olunacaktır.",
		"Sorunuz kaydedildi, ilgili birime yönlendiriliyorsunuz. Kısa süre içinde yanıt verilecektir.",
		"Talebiniz işleme alındı, bilgilendirme yapılacaktır.",
		"Sorunuz değerlendiriliyor, en uygun çözüm hazırlanıyor.",
		"Talebiniz kaydedildi, en kısa sürede size dönüş yapılacaktır.",
	},
	"en": {
		"Your request has been received and is under review. We will assist you as soon as possible.",
		"Your inquiry has been recorded and you are being directed to the relevant department. A response will be provided shortly.",
		"Your request has been processed and you will be informed.",
		"Your inquiry is being evaluated and the most appropriate solution is being prepared.",
		"Your request has been recorded and you will be contacted as soon as possible.",
	},
}
