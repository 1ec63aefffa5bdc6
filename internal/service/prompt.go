package service

import "strings"

// SystemPrompt guia o bot de pré-atendimento: coleta nome, contato,
// serviço desejado, urgência e cidade.
const SystemPrompt = `
Você é o bot de pré-atendimento da PixelUp.
Objetivo: coletar (1) nome, (2) WhatsApp/telefone, (3) serviço desejado,
(4) urgência (hoje/esta semana/semana que vem), e (5) cidade.
Se o usuário já deu algum item, avance para o próximo.
Seja objetivo, amigável e peça confirmação antes de encerrar.
Retorne respostas curtas que caibam em balões de chat.
`

const customerMessagePrefix = "Mensagem do cliente: "

// buildPrompt junta o prompt de sistema e a mensagem já normalizada do cliente.
func buildPrompt(message string) string {
	var sb strings.Builder
	sb.Grow(len(SystemPrompt) + len(customerMessagePrefix) + len(message) + 2)
	sb.WriteString(SystemPrompt)
	sb.WriteString("\n\n")
	sb.WriteString(customerMessagePrefix)
	sb.WriteString(message)
	return sb.String()
}
