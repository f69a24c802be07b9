package catalog

// WelcomeID is the id of the built-in onboarding template.
const WelcomeID = "welcome"

var builtinTemplates = []Template{
	{
		ID:       WelcomeID,
		Name:     "Boas-vindas",
		Subject:  "Bem-vindo(a) ao Portal Educacional!",
		Message:  "Olá!\n\nSeja muito bem-vindo(a) ao Portal Educacional. A partir de agora você pode acompanhar suas turmas, materiais e comunicados em um só lugar.\n\nEm caso de dúvidas, responda este e-mail ou procure a secretaria.\n\nAtenciosamente,\nEquipe do Portal Educacional",
		Category: CategoryGeneral,
		IsPublic: true,
	},
	{
		ID:       "maintenance",
		Name:     "Manutenção programada",
		Subject:  "Manutenção programada do Portal Educacional",
		Message:  "<p>Prezados(as),</p><p>O Portal Educacional passará por uma <strong>manutenção programada</strong>. Durante esse período alguns serviços poderão ficar indisponíveis.</p><p>Agradecemos a compreensão.</p><p>Equipe de Tecnologia</p>",
		IsHTML:   true,
		Category: CategorySystem,
		IsPublic: true,
	},
	{
		ID:       "event-reminder",
		Name:     "Lembrete de evento",
		Subject:  "Lembrete: evento se aproximando",
		Message:  "Olá!\n\nEste é um lembrete de que o evento para o qual você se inscreveu acontecerá em breve. Confira data, horário e local no Portal Educacional.\n\nContamos com a sua presença!",
		Category: CategoryEvent,
		IsPublic: true,
	},
	{
		ID:       "announcement",
		Name:     "Comunicado geral",
		Subject:  "Comunicado importante",
		Message:  "<p>Prezada comunidade escolar,</p><p>Informamos que há um novo comunicado disponível no Portal Educacional. Acesse sua conta para ler o conteúdo completo.</p><p>Atenciosamente,<br>Direção</p>",
		IsHTML:   true,
		Category: CategoryAdministrative,
		IsPublic: true,
	},
	{
		ID:       "grades-published",
		Name:     "Notas publicadas",
		Subject:  "Novas notas disponíveis no Portal",
		Message:  "Olá!\n\nAs notas da última avaliação já estão disponíveis no Portal Educacional. Acesse a área do aluno para conferir.\n\nBons estudos!",
		Category: CategoryAcademic,
		IsPublic: true,
	},
	{
		ID:       "password-reset",
		Name:     "Redefinição de senha",
		Subject:  "Redefina sua senha do Portal Educacional",
		Message:  "Olá!\n\nRecebemos uma solicitação para redefinir a senha da sua conta. Acesse a página de login e escolha \"Esqueci minha senha\" para concluir o processo.\n\nSe você não fez esta solicitação, ignore este e-mail.",
		Category: CategorySystem,
		IsPublic: false,
	},
}

var builtin = mustStatic(builtinTemplates...)

// Builtin returns the fixed catalog shipped with the binary.
func Builtin() *StaticProvider {
	return builtin
}

func mustStatic(templates ...Template) *StaticProvider {
	p, err := NewStaticProvider(templates...)
	if err != nil {
		panic(err)
	}
	return p
}
