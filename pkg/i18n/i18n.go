// Package i18n separa el texto de control (claves estables que viajan entre capas)
// del texto visible (mensajes traducidos). Arabic es el idioma por defecto del portal.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key identifica un mensaje visible. Es lo único que guardan el estado del flujo y los errores.
type Key string

// Claves de mensajes.
const (
	KeyInternal       Key = "internal"
	KeyInvalidBody    Key = "request.invalid_body"
	KeyFieldRequired  Key = "request.field_required"
	KeyUnknownAction  Key = "function.unknown_action"
	KeyMissingToken   Key = "token.missing"
	KeyInvalidToken   Key = "token.invalid"
	KeyMissingRole    Key = "token.missing_role"
	KeyForbidden      Key = "auth.forbidden"
	KeyTooManyRequest Key = "request.too_many"

	KeyNationalIDRequired  Key = "auth.national_id_required"
	KeyNationalIDNotFound  Key = "auth.national_id_not_found"
	KeyNationalIDExists    Key = "auth.national_id_exists"
	KeySessionMissing      Key = "auth.session_missing"
	KeyOTPRequired         Key = "auth.otp_required"
	KeyOTPInvalid          Key = "auth.otp_invalid"
	KeyOTPExpired          Key = "auth.otp_expired"
	KeyOTPAttemptsExceeded Key = "auth.otp_attempts_exceeded"
	KeyInvalidCredentials  Key = "auth.invalid_credentials"
	KeyAccountInactive     Key = "auth.account_inactive"
	KeyRegistrationInvalid Key = "auth.registration_invalid"
	KeyRegistrationFailed  Key = "auth.registration_failed"
	KeyIdentityUnavailable Key = "auth.identity_unavailable"
	KeyFlowNotFound        Key = "flow.not_found"
	KeyFlowIllegal         Key = "flow.illegal_transition"
	KeyFlowInFlight        Key = "flow.in_flight"
	KeyFlowFinished        Key = "flow.finished"
	KeySessionEstablished  Key = "flow.session_established"
	KeyStatsLoaded         Key = "stats.loaded"
	KeyStatsFailed         Key = "stats.failed"
	KeyStatsDegraded       Key = "stats.degraded"
	KeyServicesListFailed  Key = "services.list_failed"
	KeyServiceCreateFailed Key = "services.create_failed"
	KeyServiceUpdateFailed Key = "services.update_failed"
	KeyServiceToggleFailed Key = "services.toggle_failed"
	KeyServiceCheckFailed  Key = "services.check_failed"
	KeyServiceDeleteFailed Key = "services.delete_failed"
	KeyServiceHasRequests  Key = "services.has_requests"
	KeyServiceNotFound     Key = "services.not_found"
	KeyServiceDeleted      Key = "services.deleted"
	KeyBranchesListFailed  Key = "branches.list_failed"
	KeyBranchCreateFailed  Key = "branches.create_failed"
	KeyBranchUpdateFailed  Key = "branches.update_failed"
	KeyBranchToggleFailed  Key = "branches.toggle_failed"
	KeyBranchDeleteFailed  Key = "branches.delete_failed"
	KeyBranchHasDependents Key = "branches.has_dependents"
	KeyBranchNotFound      Key = "branches.not_found"
	KeyUsersListFailed     Key = "users.list_failed"
	KeyUserCreateFailed    Key = "users.create_failed"
	KeyUserUpdateFailed    Key = "users.update_failed"
	KeyUserToggleFailed    Key = "users.toggle_failed"
	KeyUserDeleteFailed    Key = "users.delete_failed"
	KeyUserNotFound        Key = "users.not_found"
	KeyUserEmailExists     Key = "users.email_exists"
	KeyProfileNotFound     Key = "profile.not_found"
	KeyProfileSaved        Key = "profile.saved"
	KeyProfileSaveFailed   Key = "profile.save_failed"
	KeyProfileBadSection   Key = "profile.invalid_section"
	KeyProfileInvalidField Key = "profile.invalid_field"
)

type entry struct {
	ar string
	en string
}

var messages = map[Key]entry{
	KeyInternal:       {"حدث خطأ غير متوقع، يرجى المحاولة لاحقاً", "An unexpected error occurred, please try again later"},
	KeyInvalidBody:    {"بيانات الطلب غير صالحة", "Invalid request body"},
	KeyFieldRequired:  {"الحقل %s مطلوب", "Field %s is required"},
	KeyUnknownAction:  {"إجراء غير معروف: %s", "Unknown action: %s"},
	KeyMissingToken:   {"رمز الدخول مطلوب", "Authorization token required"},
	KeyInvalidToken:   {"رمز الدخول غير صالح أو منتهي", "Invalid or expired token"},
	KeyMissingRole:    {"رمز الدخول لا يحتوي على صلاحية", "Token has no role"},
	KeyForbidden:      {"غير مصرح للوصول", "Access denied"},
	KeyTooManyRequest: {"عدد كبير من المحاولات، يرجى الانتظار قليلاً", "Too many requests, please wait"},

	KeyNationalIDRequired:  {"يرجى إدخال رقم الهوية الوطنية", "National ID is required"},
	KeyNationalIDNotFound:  {"رقم الهوية غير مسجل في النظام", "National ID is not registered"},
	KeyNationalIDExists:    {"رقم الهوية مسجل مسبقاً", "National ID is already registered"},
	KeySessionMissing:      {"جلسة التحقق غير موجودة، يرجى طلب رمز جديد", "Verification session not found, request a new code"},
	KeyOTPRequired:         {"يرجى إدخال رمز التحقق", "Verification code is required"},
	KeyOTPInvalid:          {"رمز التحقق غير صحيح", "Invalid verification code"},
	KeyOTPExpired:          {"انتهت صلاحية رمز التحقق، يرجى طلب رمز جديد", "Verification code expired, request a new one"},
	KeyOTPAttemptsExceeded: {"تم تجاوز عدد المحاولات المسموح بها", "Too many failed attempts"},
	KeyInvalidCredentials:  {"البريد الإلكتروني أو كلمة المرور غير صحيحة", "Invalid email or password"},
	KeyAccountInactive:     {"الحساب غير مفعل", "Account is inactive"},
	KeyRegistrationInvalid: {"بيانات التسجيل غير مكتملة", "Registration data is incomplete"},
	KeyRegistrationFailed:  {"فشل تسجيل المستفيد", "Beneficiary registration failed"},
	KeyIdentityUnavailable: {"خدمة التحقق غير متاحة حالياً", "Identity service is unavailable"},
	KeyFlowNotFound:        {"جلسة تسجيل الدخول غير موجودة أو منتهية", "Login flow not found or expired"},
	KeyFlowIllegal:         {"لا يمكن تنفيذ هذه الخطوة الآن", "This step is not allowed now"},
	KeyFlowInFlight:        {"يتم معالجة طلبك، يرجى الانتظار", "Your request is being processed"},
	KeyFlowFinished:        {"تم إكمال تسجيل الدخول مسبقاً", "Login flow already completed"},
	KeySessionEstablished:  {"تم تسجيل الدخول بنجاح", "Signed in successfully"},
	KeyStatsLoaded:         {"تم تحميل الإحصائيات بنجاح", "Statistics loaded"},
	KeyStatsFailed:         {"حدث خطأ في تحميل الإحصائيات", "Failed to load statistics"},
	KeyStatsDegraded:       {"تعذر تحميل بعض الإحصائيات", "Some statistics could not be loaded"},
	KeyServicesListFailed:  {"فشل في جلب الخدمات", "Failed to list services"},
	KeyServiceCreateFailed: {"فشل في إنشاء الخدمة", "Failed to create service"},
	KeyServiceUpdateFailed: {"فشل في تحديث الخدمة", "Failed to update service"},
	KeyServiceToggleFailed: {"فشل في تغيير حالة الخدمة", "Failed to change service status"},
	KeyServiceCheckFailed:  {"فشل في التحقق من الطلبات", "Failed to check service requests"},
	KeyServiceDeleteFailed: {"فشل في حذف الخدمة", "Failed to delete service"},
	KeyServiceHasRequests:  {"لا يمكن حذف الخدمة لوجود طلبات مرتبطة بها", "Service has requests and cannot be deleted"},
	KeyServiceNotFound:     {"الخدمة غير موجودة", "Service not found"},
	KeyServiceDeleted:      {"تم حذف الخدمة بنجاح", "Service deleted"},
	KeyBranchesListFailed:  {"فشل في جلب الفروع", "Failed to list branches"},
	KeyBranchCreateFailed:  {"فشل في إنشاء الفرع", "Failed to create branch"},
	KeyBranchUpdateFailed:  {"فشل في تحديث الفرع", "Failed to update branch"},
	KeyBranchToggleFailed:  {"فشل في تغيير حالة الفرع", "Failed to change branch status"},
	KeyBranchDeleteFailed:  {"فشل في حذف الفرع", "Failed to delete branch"},
	KeyBranchHasDependents: {"لا يمكن حذف الفرع لوجود موظفين أو مستفيدين مرتبطين به", "Branch has users or members and cannot be deleted"},
	KeyBranchNotFound:      {"الفرع غير موجود", "Branch not found"},
	KeyUsersListFailed:     {"فشل في جلب المستخدمين", "Failed to list users"},
	KeyUserCreateFailed:    {"فشل في إنشاء المستخدم", "Failed to create user"},
	KeyUserUpdateFailed:    {"فشل في تحديث المستخدم", "Failed to update user"},
	KeyUserToggleFailed:    {"فشل في تغيير حالة المستخدم", "Failed to change user status"},
	KeyUserDeleteFailed:    {"فشل في حذف المستخدم", "Failed to delete user"},
	KeyUserNotFound:        {"المستخدم غير موجود", "User not found"},
	KeyUserEmailExists:     {"البريد الإلكتروني أو رقم الهوية مسجل مسبقاً", "Email or national ID already registered"},
	KeyProfileNotFound:     {"الملف الشخصي غير موجود", "Profile not found"},
	KeyProfileSaved:        {"تم حفظ التغييرات بنجاح", "Changes saved"},
	KeyProfileSaveFailed:   {"حدث خطأ أثناء حفظ التغييرات", "Failed to save changes"},
	KeyProfileBadSection:   {"قسم غير معروف: %s", "Unknown section: %s"},
	KeyProfileInvalidField: {"قيمة غير صالحة للحقل %s", "Invalid value for field %s"},
}

var (
	supported = []language.Tag{language.Arabic, language.English}
	matcher   = language.NewMatcher(supported)
	cat       = buildCatalog()
	fallback  = language.Arabic
)

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.Arabic))
	for k, e := range messages {
		_ = b.SetString(language.Arabic, string(k), e.ar)
		_ = b.SetString(language.English, string(k), e.en)
	}
	return b
}

// SetDefault cambia el idioma usado cuando el cliente no envía Accept-Language (APP_LANGUAGE).
func SetDefault(lang string) {
	tag, err := language.Parse(lang)
	if err != nil {
		return
	}
	_, idx, _ := matcher.Match(tag)
	fallback = supported[idx]
}

// Match elige el idioma soportado más cercano a una cabecera Accept-Language.
func Match(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return supported[idx]
}

// Printer devuelve un printer ligado al catálogo del portal.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(cat))
}

// T traduce una clave al idioma indicado.
func T(tag language.Tag, key Key, args ...interface{}) string {
	return Printer(tag).Sprintf(string(key), args...)
}

// Known indica si la clave existe en el catálogo.
func Known(key Key) bool {
	_, ok := messages[key]
	return ok
}
