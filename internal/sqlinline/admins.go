package sqlinline

const QSelectAdminByEmail = `--sql 6e29c4b8-0f57-4d13-ae86-92d1b3f07a45
select id, email, password_hash, created_at
from admins
where lower(email) = lower($1::text);
`
