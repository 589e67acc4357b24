package sqlinline

const QDashboardSummary = `--sql d40a86f1-3c2e-4b97-85d0-6f19e7c2a5b3
select
  (select coalesce(sum(amount), 0) from donations where type = 'general')::bigint,
  (select count(*) from donations where type = 'general')::bigint,
  (select coalesce(sum(monthly_amount), 0) from kakasaku_members)::bigint,
  (select count(*) from kakasaku_members)::bigint,
  (select count(*) from kakasaku_members where payment_status = 'paid')::bigint,
  (select count(*) from kakasaku_members where payment_status = 'unpaid')::bigint,
  (select count(*) from programs)::bigint;
`
